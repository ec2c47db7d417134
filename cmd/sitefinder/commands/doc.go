// Package commands implements the sitefinder command line.
//
// Commands:
//
//	resolve    resolve one company to its website or social profile
//	run        resolve every row of a CSV and append a found_link column
//	review     write a workbook of top candidates for human labelling
//	calibrate  train a calibration model from a labelled workbook
//
// Every command reads configuration from --config, SITEFINDER_* environment
// variables and a .env file in the working directory.
package commands
