/*
Package main: TAPEVM -- a tape machine with exactly sized output

The machine has a tape of byte cells, 128 of them unless told otherwise, all
zero when a program starts, and a data pointer resting on the first cell.
Programs are text; only seven symbols mean anything to the machine:

	'+'  add one to the current cell, 255 wraps around to 0
	'-'  subtract one from the current cell, 0 wraps around to 255
	'>'  move the data pointer one cell right
	'<'  move the data pointer one cell left
	'.'  emit the current cell as one output byte
	'['  loop: run the body up to the matching ] while the current cell is not 0
	']'  end of a loop body

Everything else is ignored, so programs may carry comments, whitespace, and
line breaks freely. There is no input instruction.

Loops are run by recursion: while the loop's cell is non-zero, the body is run
as a program of its own against the same tape and data pointer. Once the
condition fails (maybe straight away) the body is scanned one more time with
every instruction switched off, purely to find where the loop ends. Brackets
are still followed during that scan, so nested loops are skipped whole.

The data pointer may wander off the tape, but touching a cell while it is
there stops the run with a BoundsError; the tape never grows.

# Sizing Output

How many bytes a program emits is not known until it has run. Eval therefore
runs it twice: once into a CountingSink that only counts, then again into a
RecordingSink with room for exactly that many bytes plus a 0 sentinel. Since a
run depends on nothing but the program text, both runs emit the same bytes.
If they somehow did not, the RecordingSink refuses to overflow rather than
truncate.

# Limits

A loop whose cell never reaches 0 runs forever. Runs take a context, checked
before every instruction, and an optional step limit (WithStepLimit); either
turns such a program into an error rather than a hang.

# Command

	tapevm [flags] [FILE...]

evaluates each FILE (or standard input) and writes its output to standard
output; see -help for flags. Defaults may also come from a TOML file given
with -config:

	[tape]
	size = 128

	[run]
	step-limit = 1000000
	timeout = "5s"
	jobs = 4

	[output]
	quote = true
*/
package main
