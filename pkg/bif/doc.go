// Package bif reads Bayesian networks in the textual interchange format
// (BIF) and builds [network.Network] descriptors from them.
//
// # Format
//
// A document is a network block followed by variable and probability blocks
// in any order:
//
//	network Alarm { }
//	variable Burglary { type discrete [ 2 ] { True, False }; }
//	variable Alarm { type discrete [ 2 ] { True, False }; }
//	probability ( Burglary ) { table 0.01, 0.99; }
//	probability ( Alarm | Burglary ) {
//	  (True) 0.94, 0.06;
//	  (False) 0.01, 0.99;
//	}
//
// A probability block holds either a flat table, laid out with the child
// state varying slowest and the last parent fastest, or one entry per parent
// combination listing the child's values. A default row fills every
// combination without an entry. Comments use // and /* */.
//
// # Errors
//
// [Parse] and [Build] return *[Error] values that carry a line and column.
// [Load] and [Read] wrap them with the PARSE_ERROR code from pkg/errors, and
// report a missing or unreadable file as FILE_NOT_FOUND.
//
// Cycles among variables are accepted; the package does not check that
// probabilities are normalized.
package bif
