// Package insts provides RISC-V instruction definitions and decoding.
//
// This package turns 32-bit RISC-V machine words into typed instruction
// records. Only the fields that matter for pipeline hazard analysis are
// decoded:
//   - Kind: the encoding format (R, I, S, B, U, J) selected by the opcode
//   - Rd, Rs1, Rs2: register fields, present only where the format has them
//   - IsLoad, IsStore, IsBranch: classification flags derived from the opcode
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x003100B3) // ADD x1, x2, x3
//	fmt.Printf("Kind: %v, Rd: %v, Rs1: %v, Rs2: %v\n", inst.Kind, inst.Rd, inst.Rs1, inst.Rs2)
package insts
