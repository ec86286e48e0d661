// Package naming generates the new names for a rename batch.
//
// Two policies are supported, selected by [config.NamingPolicy]:
//
//	random:     <prefix>_<number>_<YYMMDD>_<random>.<ext>
//	            prefix capped at 4 characters; the random suffix fills a
//	            22-character budget but is never shorter than 2.
//	sequential: <prefix><YYMMDD><number>.<ext>
//	            numbers clamped to 99999 and zero-padded to 3 digits below
//	            100; the prefix gets whatever remains of a 15-character
//	            budget after the date and the digits of the largest number.
//
// A [Batch] fixes the effective prefix, date stamp and start number once, so
// every file and the folder summary of one invocation agree.
package naming
