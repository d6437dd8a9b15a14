package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Profile holds the bio-data printed on a student's report card, persisted in
// student_profiles.json. A profile may exist without a matching Account and
// vice versa; the portal tolerates the gap rather than enforcing it.
type Profile struct {
	StudentName   string  `json:"student_name"`
	Age           FlexInt `json:"age"`
	RegNumber     string  `json:"reg_number"`
	ParentName    string  `json:"parent_name"`
	ParentPhone   string  `json:"parent_phone"`
	ParentAddress string  `json:"parent_address"`
	Session       string  `json:"session"`
	Term          string  `json:"term"`
}

// FlexInt is an integer that tolerates the legacy file format, where a blank
// age was written as "" and a filled one as a number. It always marshals as a
// number.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(int(n))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(int(n))
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(f))), nil
}
