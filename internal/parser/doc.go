// Package parser turns raw lines of the jcblock files into records.
//
// The call log (callerID.dat) and the two pattern lists (whitelist.dat and
// blacklist.dat) are written by the jcblock device in fixed layouts. Every
// function here is pure: a line that does not fit its layout yields no record
// and is never reported as an error, so a damaged file can still be read.
package parser
