// Package review reads and writes the tabular files of the command line:
// company CSV input, the CSV with a found_link column, and the review
// workbook that humans label for calibration.
//
// Input CSVs use the headers name, sector and address. The Turkish headers
// "Firma Adı", "Sektör" and "Adres" are accepted as well. Only the name
// column is required.
package review
