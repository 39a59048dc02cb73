// Package display formats user-facing warnings for the validate command.
//
// A Warning is rendered in yellow when the destination is a terminal:
//
//	for _, w := range display.Diagnose(atoms, words, wordlistPath) {
//	    w.Display(os.Stdout)
//	}
//
// Diagnose reports pattern and wordlist conditions that are legal but
// probably unintended, such as a class repeated more times than it has
// characters.
package display
