// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"sort"
	"strings"
)

// SortDataset sorts rows in place by a comma separated spec. Each field may
// be prefixed with "-" for descending order or "!" for a case sensitive
// comparison. Numbers compare numerically and everything else falls back to
// strings.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	fields := strings.Split(spec, ",")

	sort.SliceStable(resultSet, func(one, two int) bool {

		for _, field := range fields {
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue := resultSet[one][field]
			twoValue := resultSet[two][field]

			// Compare numerically when both sides are numbers.
			oneFloat, oneOk := toFloat(oneValue)
			twoFloat, twoOk := toFloat(twoValue)

			if oneOk && twoOk {
				if oneFloat != twoFloat {
					if ascending {
						return oneFloat < twoFloat
					}
					return oneFloat > twoFloat
				}
				continue
			}

			// Fall back to string comparison which can also handle bools.
			oneStr := InterfaceToString(oneValue)
			twoStr := InterfaceToString(twoValue)

			compareOneStr := oneStr
			compareTwoStr := twoStr
			if !caseSensitive {
				compareOneStr = strings.ToLower(oneStr)
				compareTwoStr = strings.ToLower(twoStr)
			}

			if compareOneStr != compareTwoStr {
				if ascending {
					return compareOneStr < compareTwoStr
				}
				return compareOneStr > compareTwoStr
			}

		}
		return false
	})
}

// toFloat widens any of the numeric shapes JSON decoding produces.
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case int:
		return float64(v), true
	}
	return 0, false
}
