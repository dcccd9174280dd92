package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MarshalJSON renders the snapshot as a JSON object whose keys appear in
// insertion order. Duplicate names are rendered as-is; the tree builder is
// responsible for unique naming within one level.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.appendJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Snapshot) appendJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, item := range s.Items {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(item.Name)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if err := appendValueJSON(buf, item.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func appendValueJSON(buf *bytes.Buffer, value Value) error {
	switch v := value.(type) {
	case Number:
		encoded, err := json.Marshal(float64(v))
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case Int:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(v)))
	case Text:
		encoded, err := json.Marshal(string(v))
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case *Snapshot:
		return v.appendJSON(buf)
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("snapshot: unsupported value type %T", value)
	}
	return nil
}
