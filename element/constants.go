package element

// Named constants for elements that appear routinely in microanalysis.
// Any other element is reachable via FromZ or BySymbol.
const (
	H  Element = 1
	Be Element = 4
	B  Element = 5
	C  Element = 6
	N  Element = 7
	O  Element = 8
	F  Element = 9
	Na Element = 11
	Mg Element = 12
	Al Element = 13
	Si Element = 14
	P  Element = 15
	S  Element = 16
	Cl Element = 17
	K  Element = 19
	Ca Element = 20
	Ti Element = 22
	V  Element = 23
	Cr Element = 24
	Mn Element = 25
	Fe Element = 26
	Co Element = 27
	Ni Element = 28
	Cu Element = 29
	Zn Element = 30
	Ge Element = 32
	Sr Element = 38
	Zr Element = 40
	Nb Element = 41
	Mo Element = 42
	Ag Element = 47
	Sn Element = 50
	Ba Element = 56
	Ta Element = 73
	W  Element = 74
	Pt Element = 78
	Au Element = 79
	Pb Element = 82
	Bi Element = 83
	U  Element = 92
)
