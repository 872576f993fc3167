// Package expr parses and runs command lines. A command line is an optional
// address followed by any number of commands.
package expr

// Addresses
/*
An address selects a set of line indices in the active buffer. Line 0 is the
first line of the buffer.

n        Line n.
$        The last line.
%        Every line.
.        The current selection (the cursor). An empty address means the same.
'name    The lines recorded under mark name. A name is a run of letters,
         digits and '_'. A lone ' is the default mark; it must be followed
         by a blank or a non-name rune, so ' p prints the default mark and
         'p is the mark named p.
/regexp/ Every line matching regexp. \/ quotes a slash.
a1-a2    Lines a1 through a2. a1 and a2 must be n or $, optionally followed
         by ^k.

Postfix operators, applied to the preceding term:

^k       Move every line by k (k may be negative).
#k       Extend every line by k lines forward, or backward if k is negative.
&        Extend every line to the indentation block starting at it.

r1+r2    Union of r1 and r2. + binds loosest; parentheses group.

Language grammar:

range   -> term ('+' term)*
term    -> primary (('^' int) | ('#' int) | '&')*
primary -> '(' range ')' | atom
atom    -> '/' regexp '/' | '%' | '.' | '\'' name? | addr ('-' addr)?
name    -> (letter | digit | '_')+
addr    -> (uint | '$') ('^' int)*
int     -> '-'? uint

Commands

Commands follow the address and may be chained on one line. A name is the run
of non-blank characters directly after the command.

d[name]      Delete the lines into a register.
y[name]      Copy the lines into a register.
pa[name]     Paste a register before each selected line.
i            Insert typed lines before each selected line, until a lone ".".
a            Append typed lines after each selected line, until a lone ".".
Itext        Prepend text to each selected line.
Atext        Append text to each selected line.
c            Change a span of characters in each selected line.
t range      Copy the lines after each line of range.
s/re/text/   Replace every match of re with text.
p, P         Print the lines with, or without, their indices.
r[name]      Print a register, or all registers.
m[name]      Record the selection under a mark.
cl           Clear the screen.
bl           List buffers.
bn [path]    Open a new buffer.
bc n         Switch to buffer n.
bd[!], bq[!] Close the buffer.
w [path]     Write the buffer.
e[!] [path]  Load a document into the buffer.
*/
