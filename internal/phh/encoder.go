package phh

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/lox/showdown/internal/fileutil"
	"github.com/lox/showdown/poker"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeSection writes the hand as table [index] of a multi-hand .phhs file.
func EncodeSection(w io.Writer, index int, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	if index < 1 {
		return fmt.Errorf("phh: section index must be positive, got %d", index)
	}

	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(map[string]*HandHistory{strconv.Itoa(index): hand})
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DealHole is the dealer action giving seat (zero-based) its hole cards.
func DealHole(seat int, cards []poker.Card) string {
	return fmt.Sprintf("d dh %s %s", player(seat), poker.ShortCards(cards))
}

// DealBoard is the dealer action revealing community cards.
func DealBoard(cards []poker.Card) string {
	return "d db " + poker.ShortCards(cards)
}

// ShowHole is the showdown action for seat (zero-based).
func ShowHole(seat int, cards []poker.Card) string {
	return fmt.Sprintf("%s sm %s", player(seat), poker.ShortCards(cards))
}

func player(seat int) string {
	return "p" + strconv.Itoa(seat+1)
}

// WriteFile atomically replaces filename with a .phhs file holding hands as
// sections [1], [2], and so on.
func WriteFile(filename string, hands []*HandHistory) error {
	return fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		for i, hand := range hands {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err := EncodeSection(w, i+1, hand); err != nil {
				return fmt.Errorf("phh: hand %d: %w", i+1, err)
			}
		}
		return nil
	})
}
