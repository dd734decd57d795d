package cpu

// 6502 interrupt vectors. https://en.wikipedia.org/wiki/Interrupts_in_65xx_processors
const (
	vectorNMI   uint64 = 0xFFFA
	vectorReset uint64 = 0xFFFC
	vectorBRK   uint64 = 0xFFFE
)
