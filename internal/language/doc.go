// Package language provides unified language code normalization.
//
// Container metadata tags audio and subtitle streams with ISO 639-2
// three-letter codes, but users write rules with whatever form they know:
// two-letter codes, alternate three-letter codes ("fre" vs "fra"), or plain
// words ("french"). Everything is canonicalized here so selection compares
// one form.
package language
