package employeesalary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ComponentSelection adalah satu komponen yang dipilih untuk sebuah gaji,
// dengan override nilai opsional. Override nol dianggap tidak diisi.
type ComponentSelection struct {
	ComponentID      string           `json:"id"`
	CustomAmount     *decimal.Decimal `json:"custom_amount"`
	CustomPercentage *decimal.Decimal `json:"custom_percentage"`
}

type selectionObject struct {
	ID               json.RawMessage `json:"id"`
	CustomAmount     json.RawMessage `json:"custom_amount"`
	CustomPercentage json.RawMessage `json:"custom_percentage"`
}

// UnmarshalJSON menerima dua bentuk: id polos (string/angka, format lama)
// atau objek {"id", "custom_amount", "custom_percentage"}.
func (s *ComponentSelection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("component selection cannot be null")
	}

	if data[0] != '{' {
		id, err := parseID(data)
		if err != nil {
			return err
		}
		*s = ComponentSelection{ComponentID: id}
		return nil
	}

	var obj selectionObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	id, err := parseID(obj.ID)
	if err != nil {
		return err
	}
	amount, err := parseOptionalDecimal(obj.CustomAmount)
	if err != nil {
		return fmt.Errorf("custom_amount: %w", err)
	}
	pct, err := parseOptionalDecimal(obj.CustomPercentage)
	if err != nil {
		return fmt.Errorf("custom_percentage: %w", err)
	}

	*s = ComponentSelection{
		ComponentID:      id,
		CustomAmount:     amount,
		CustomPercentage: pct,
	}
	return nil
}

func (s ComponentSelection) HasCustomAmount() bool {
	return s.CustomAmount != nil && !s.CustomAmount.IsZero()
}

func (s ComponentSelection) HasCustomPercentage() bool {
	return s.CustomPercentage != nil && !s.CustomPercentage.IsZero()
}

// ParseSelections membaca kolom components dan menormalkan ke satu bentuk.
// Id duplikat dibuang, yang pertama dipertahankan.
func ParseSelections(raw []byte) ([]ComponentSelection, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []ComponentSelection{}, nil
	}

	var selections []ComponentSelection
	if err := json.Unmarshal(raw, &selections); err != nil {
		return nil, fmt.Errorf("invalid components payload: %w", err)
	}

	return dedupeSelections(selections), nil
}

func MarshalSelections(selections []ComponentSelection) (datatypes.JSON, error) {
	normalized := dedupeSelections(selections)
	payload, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(payload), nil
}

func SelectionIDs(selections []ComponentSelection) []string {
	ids := make([]string, 0, len(selections))
	for _, s := range selections {
		ids = append(ids, s.ComponentID)
	}
	return ids
}

func dedupeSelections(selections []ComponentSelection) []ComponentSelection {
	seen := make(map[string]struct{}, len(selections))
	out := make([]ComponentSelection, 0, len(selections))
	for _, s := range selections {
		if s.ComponentID == "" {
			continue
		}
		if _, ok := seen[s.ComponentID]; ok {
			continue
		}
		seen[s.ComponentID] = struct{}{}
		out = append(out, s)
	}
	return out
}

func parseID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("component id is required")
	}

	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", err
		}
		id = strings.TrimSpace(id)
		if id == "" {
			return "", fmt.Errorf("component id is required")
		}
		return id, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid component id %s", string(raw))
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return "", fmt.Errorf("invalid component id %s", n.String())
	}
	return n.String(), nil
}

// parseOptionalDecimal: null, "" dan field kosong berarti tidak diisi.
func parseOptionalDecimal(raw json.RawMessage) (*decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return nil, err
	}
	return &d, nil
}
