package uno

// Protocol-level frozen chunk parameters for UNO v1.
//
// Any change to these values breaks the link between what is encrypted and
// what the range proofs attest to, and must be treated as a protocol upgrade.
var (
	// BalanceChunkParams splits 128-bit balances into eight 16-bit-weighted
	// chunks. Chunks may grow to 32 bits as incoming transfers accumulate.
	BalanceChunkParams = ChunkParams{
		RadixBits: 16,
		MaxBits:   128,
		ChunkBits: 32,
	}

	// AmountChunkParams splits 64-bit transfer amounts into four 16-bit chunks.
	AmountChunkParams = ChunkParams{
		RadixBits: 16,
		MaxBits:   64,
		ChunkBits: 16,
	}
)

// SolverWidths are the discrete log table widths needed to decrypt any chunk
// produced under the parameters above.
var SolverWidths = []int{16, 32}
