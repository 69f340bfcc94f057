package geflip

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// The ledger persists as a JSONL stream: one record per line, each tagged
// with a "command" field naming its kind. Unknown commands are an error so
// a newer file is never silently half-read.

// CommandType tags a ledger line with its record kind.
type CommandType string

const (
	CmdInvest  CommandType = "invest"
	CmdAlert   CommandType = "alert"
	CmdWatch   CommandType = "watch"
	CmdProfile CommandType = "profile"
)

type investLine struct {
	Command CommandType `json:"command"`
	Investment
}

type alertLine struct {
	Command CommandType `json:"command"`
	PriceAlert
}

type watchLine struct {
	Command CommandType `json:"command"`
	Watchlist
}

type profileLine struct {
	Command CommandType `json:"command"`
	Profile
}

// DecodeLedger reads a JSONL stream into a ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(b, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify command: %w", line, err)
		}

		switch identifier.Command {
		case CmdInvest:
			var rec investLine
			if err := json.Unmarshal(b, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if err := ledger.AddInvestment(rec.Investment); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		case CmdAlert:
			var rec alertLine
			if err := json.Unmarshal(b, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			ledger.SetAlert(rec.PriceAlert)
		case CmdWatch:
			var rec watchLine
			if err := json.Unmarshal(b, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			ledger.watchlist = rec.Watchlist
		case CmdProfile:
			var rec profileLine
			if err := json.Unmarshal(b, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			ledger.profile = rec.Profile
		default:
			return nil, fmt.Errorf("line %d: unknown command %q", line, identifier.Command)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ledger, nil
}

// EncodeLedger writes the ledger as a canonical JSONL stream: profile
// first, then watchlist, alerts and investments.
func EncodeLedger(w io.Writer, l *Ledger) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(profileLine{CmdProfile, l.profile}); err != nil {
		return err
	}
	if err := enc.Encode(watchLine{CmdWatch, l.watchlist}); err != nil {
		return err
	}
	for _, a := range l.alerts {
		if err := enc.Encode(alertLine{CmdAlert, a}); err != nil {
			return err
		}
	}
	for _, inv := range l.investments {
		if err := enc.Encode(investLine{CmdInvest, inv}); err != nil {
			return err
		}
	}
	return nil
}

// LoadLedger reads a ledger file. A missing file yields an empty ledger,
// so a first run needs no setup.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeLedger(f)
}

// SaveLedger writes the whole ledger to path atomically: it encodes into a
// temp file in the same directory and renames over the target. A split
// sale saved this way is all-or-nothing on disk, a concurrent reader sees
// either the old lot or the remainder plus closed lots, never a half
// state.
func SaveLedger(path string, l *Ledger) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".geflip-*.jsonl")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := EncodeLedger(f, l); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
