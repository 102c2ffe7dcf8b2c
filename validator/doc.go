// Package validator proves that an assembled single-operation document is
// complete. Two independent checks must both pass before an extraction is
// trusted:
//
//   - Closure: every reference string anywhere in the output, in the
//     operation and inside the component bodies themselves, must resolve to
//     an entry in the output's own component store. This check is fully
//     self-contained and never consults the source document.
//
//   - Fidelity: the seed-reference scan the resolver performed is recomputed
//     from scratch against the original document, the transitive closure is
//     re-followed there, and every reference in that closure must be present
//     in the output's component store. This catches a resolver or assembler
//     defect that silently drops a dependency. A missing source document is
//     a caller error, never a pass.
//
// Both checks report every offending reference, not just the first, so one
// validation run gives a complete diagnostic.
package validator
