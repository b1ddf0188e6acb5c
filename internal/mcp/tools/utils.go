package tools

import (
	"encoding/json"
	"fmt"
)

func parseIDArgument(value any) (int64, error) {
	switch v := value.(type) {
	case float64:
		if v <= 0 {
			return 0, fmt.Errorf("id must be positive")
		}
		return int64(v), nil
	case int:
		if v <= 0 {
			return 0, fmt.Errorf("id must be positive")
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("id must be provided")
	}
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
