// Package sqlexec runs the statements of a SQL script file, one at a time,
// against a database resolved by driver name. It splits the script on a
// configurable separator character, echoes comments and statements as it
// goes, and stops at the first failure.
package sqlexec
