package cliutil

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/haugstad/fenc/envelope"
)

// SubkeyDump is the per-file second JSON object decrypt mode emits
// when --json is set (spec.md §6).
type SubkeyDump struct {
	PasswordValidator string `json:"password validator"`
	FirstRoundKey     string `json:"1st round key"`
	SecondRoundKey    string `json:"2nd round key"`
	ThirdRoundKey     string `json:"3rd round key"`
	FourthRoundKey    string `json:"4th round key"`
	MACKey            string `json:"mac key"`
	SearchTermKey     string `json:"search term key"`
}

// DumpEncrypt writes filename -> master-key-hex for an encrypt run.
func DumpEncrypt(w io.Writer, results []envelope.EncryptResult) error {
	out := make(map[string]string, len(results))
	for _, r := range results {
		out[r.Filename] = r.MasterKeyHex
	}
	return dumpJSON(w, out)
}

// DumpDecrypt writes the two objects decrypt mode produces: filename
// -> master-key-hex, and filename -> subkey dump, in that order.
func DumpDecrypt(w io.Writer, results []envelope.DecryptResult) error {
	masterKeys := make(map[string]string, len(results))
	subkeys := make(map[string]SubkeyDump, len(results))
	for _, r := range results {
		if r.Tampered {
			continue
		}
		masterKeys[r.Filename] = r.MasterKeyHex
		subkeys[r.Filename] = SubkeyDump{
			PasswordValidator: r.ValidatorHex,
			FirstRoundKey:     r.K1Hex,
			SecondRoundKey:    r.K2Hex,
			ThirdRoundKey:     r.K3Hex,
			FourthRoundKey:    r.K4Hex,
			MACKey:            r.MACKeyHex,
			SearchTermKey:     r.SearchKeyHex,
		}
	}
	if err := dumpJSON(w, masterKeys); err != nil {
		return err
	}
	return dumpJSON(w, subkeys)
}

// DumpSearch writes the bare filename -> master-key-hex map for every
// sidecar search mode matched the password against.
func DumpSearch(w io.Writer, masterKeys map[string]string) error {
	return dumpJSON(w, masterKeys)
}

func dumpJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cliutil: failed to marshal JSON dump: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
