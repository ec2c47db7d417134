// Package normalize turns company names, page text and addresses into the
// canonical form every matcher in sitefinder compares against.
//
// [Normalize] lower-cases, folds Turkish and other diacritics, replaces
// punctuation with spaces and collapses whitespace. On top of it the package
// offers brand-core tokenisation ([BrandCore], [BrandForms], [CoreVariants]),
// the closed legal-suffix set, the sector keyword list with its three
// lexicons, and the province gazetteer.
package normalize
