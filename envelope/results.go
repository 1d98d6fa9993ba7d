package envelope

// EncryptResult describes the outcome of encrypting one file.
type EncryptResult struct {
	Filename     string
	MasterKeyHex string
}

// DecryptResult describes the outcome of processing one file under
// decrypt. Tampered is true when the MAC check failed; in that case
// the file was left untouched and no key-material fields are
// meaningful beyond Filename.
type DecryptResult struct {
	Filename     string
	Tampered     bool
	MasterKeyHex string
	ValidatorHex string
	K1Hex        string
	K2Hex        string
	K3Hex        string
	K4Hex        string
	MACKeyHex    string
	SearchKeyHex string
}

// SearchHit reports that Filename's index contains Query.
type SearchHit struct {
	Filename string
	Query    string
}

// SkippedFile records a sidecar that Search declined to consider,
// and why (most commonly: password mismatch).
type SkippedFile struct {
	Filename string
	Reason   string
}

// SearchResult is the aggregate outcome of a search invocation.
type SearchResult struct {
	Hits       []SearchHit
	MasterKeys map[string]string
	Skipped    []SkippedFile
}
