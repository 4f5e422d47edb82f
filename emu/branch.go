// Package emu provides functional MIPS-I emulation.
package emu

// LinkReg is the register that receives return addresses ($ra).
const LinkReg uint8 = 31

// BranchUnit implements the MIPS-I control-transfer operations on top of the
// register file's branch delay latch.
//
// By the time a branch executes, PC has already advanced to the delay-slot
// instruction. Relative targets are therefore PC + 4*offset, region jumps
// take their top four bits from the delay-slot PC, and the link value PC + 4
// is the address after the delay slot.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// Jump arms the delay latch with an absolute target. A jump issued from a
// delay slot overwrites the pending target (last writer wins).
func (b *BranchUnit) Jump(target uint32) {
	b.regFile.NextPC = target
	b.regFile.Branching = true
}

// BranchIf arms the delay latch with PC + 4*offset when taken is true.
func (b *BranchUnit) BranchIf(taken bool, offset int32) {
	if taken {
		b.Jump(b.regFile.PC + uint32(offset)*4)
	}
}

// RegionJump arms the delay latch with a 26-bit region target: the top four
// bits of the delay-slot PC joined with target<<2.
func (b *BranchUnit) RegionJump(target uint32) {
	b.Jump(b.regFile.PC&0xF0000000 | target<<2)
}

// Link writes the return address, PC + 4, into reg.
func (b *BranchUnit) Link(reg uint8) {
	b.regFile.WriteReg(reg, b.regFile.PC+4)
}
