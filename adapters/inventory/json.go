package inventory

import (
	"encoding/json"
	"fmt"
	"io"
)

// parseJSON walks the token stream so object key order is kept
func parseJSON(r io.Reader) (*node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	root, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return root, nil
}

func readJSONValue(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case nil:
		return nullNode(), nil
	case string:
		return stringNode(v), nil
	case bool:
		return boolNode(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", v, err)
		}
		return numberNode(f), nil
	case json.Delim:
		switch v {
		case '[':
			list := listNode()
			for dec.More() {
				item, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list.list = append(list.list, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		case '{':
			obj := objectNode()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				value, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.fields = append(obj.fields, field{key: key, value: value})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}
