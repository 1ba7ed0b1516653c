// Package dices reads speech records exported from the DICES database of
// direct speech in Greek and Latin epic.
package dices

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"loci/internal/domain"
)

// ID accepts both numeric and string identifiers.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return fmt.Errorf("dices id: unexpected %s", data)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("dices id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Character is a speaker or addressee.
type Character struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Work is the poem a speech belongs to.
type Work struct {
	ID     ID     `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	TLG    string `json:"tlg"`
}

// Tag is a speech-type annotation.
type Tag struct {
	Type string `json:"type"`
}

// Speech is a DICES speech record. It implements domain.Speech.
type Speech struct {
	RecID     ID               `json:"id"`
	LFi       string           `json:"l_fi"`
	LLa       string           `json:"l_la"`
	Language  string           `json:"lang"`
	Speakers  []Character      `json:"spkr"`
	Work      *Work            `json:"work"`
	TagList   []Tag            `json:"tags"`
	LineArray domain.LineArray `json:"line_array"`
	FlatText  string           `json:"text"`

	// Attributes holds every field of the source object, including ones
	// not mapped above.
	Attributes map[string]any `json:"-"`
}

func (s *Speech) ID() string              { return string(s.RecID) }
func (s *Speech) FirstLine() string       { return s.LFi }
func (s *Speech) LastLine() string        { return s.LLa }
func (s *Speech) Lang() string            { return s.Language }
func (s *Speech) Lines() domain.LineArray { return s.LineArray }

// Speaker joins speaker names with ", ".
func (s *Speech) Speaker() string {
	names := make([]string, 0, len(s.Speakers))
	for _, c := range s.Speakers {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

// Text returns the flat text, falling back to the joined line array.
func (s *Speech) Text() string {
	if s.FlatText != "" {
		return s.FlatText
	}
	return s.LineArray.Text()
}

// Tags returns the distinct tag types in first-seen order.
func (s *Speech) Tags() []string {
	var tags []string
	seen := make(map[string]struct{}, len(s.TagList))
	for _, t := range s.TagList {
		if _, ok := seen[t.Type]; ok {
			continue
		}
		seen[t.Type] = struct{}{}
		tags = append(tags, t.Type)
	}
	return tags
}

func (s *Speech) String() string {
	return fmt.Sprintf("<Speech %s: %s (%s-%s)>", s.RecID, s.Speaker(), s.LFi, s.LLa)
}

// TLG returns the TLG identifier of the speech's work in dotted form.
func TLG(s *Speech) (string, bool) {
	if s.Work == nil || s.Work.TLG == "" {
		return "", false
	}
	return strings.ReplaceAll(s.Work.TLG, "_", "."), true
}

// Decode reads speeches from r. The input is either a JSON array or an
// API page of the form {"data": [...]}.
func Decode(r io.Reader) ([]*Speech, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var raws []json.RawMessage
	if data[0] == '{' {
		var page struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("decode dices page: %w", err)
		}
		raws = page.Data
	} else if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode dices speeches: %w", err)
	}

	speeches := make([]*Speech, 0, len(raws))
	for i, raw := range raws {
		var s Speech
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode dices speech %d: %w", i, err)
		}
		if err := json.Unmarshal(raw, &s.Attributes); err != nil {
			return nil, fmt.Errorf("decode dices speech %d attributes: %w", i, err)
		}
		if s.RecID == "" {
			s.RecID = ID("dices-" + strconv.Itoa(i))
		}
		speeches = append(speeches, &s)
	}
	return speeches, nil
}

// LoadFile reads speeches from a JSON export on disk.
func LoadFile(path string) ([]*Speech, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	speeches, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return speeches, nil
}
