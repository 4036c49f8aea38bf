package comparator

import (
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Comparator checks reports against a reference record. Every record of a report must carry the
// keys of the reference, in the same order and with the same JSON types.
type Comparator struct {
	referenceJson gjson.Result
}

func NewComparator(referenceJson gjson.Result) *Comparator {
	return &Comparator{referenceJson: referenceJson}
}

func NewComparatorFromFilePath(filePath string) (*Comparator, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	json := gjson.ParseBytes(file)
	if !json.IsObject() {
		return nil, errors.New("ambiguous comparison: reference is not a single report record")
	}
	return NewComparator(json), nil
}

type Comparison struct {
	actualJson    gjson.Result
	referenceJson gjson.Result
	nullableKeys  []string
}

func (c *Comparison) nullable(key string) bool {
	for _, k := range c.nullableKeys {
		if key == k {
			return true
		}
	}
	return false
}

func (c *Comparison) newError(a gjson.Result, b gjson.Result, msg string) error {
	return fmt.Errorf("comparison failed:\nactual at %s (value: %s)\nreference at %s (value: %s)\n%s", a.Path(c.actualJson.Raw), a.Raw, b.Path(c.referenceJson.Raw), b.Raw, msg)
}

func keys(r gjson.Result) []string {
	var ks []string
	r.ForEach(func(key, _ gjson.Result) bool {
		ks = append(ks, key.String())
		return true
	})
	return ks
}

func (c *Comparison) record(actual gjson.Result) error {
	if !actual.IsObject() {
		return c.newError(actual, c.referenceJson, "record is not an object")
	}

	refKeys, actualKeys := keys(c.referenceJson), keys(actual)
	if fmt.Sprint(refKeys) != fmt.Sprint(actualKeys) {
		return c.newError(actual, c.referenceJson, fmt.Sprintf("key mismatch: expect keys %v, but found %v", refKeys, actualKeys))
	}

	for _, key := range refKeys {
		value, ref := actual.Get(key), c.referenceJson.Get(key)
		if value.Type == gjson.Null && c.nullable(key) {
			continue
		}
		if value.Type != ref.Type {
			return c.newError(value, ref, "type mismatch: expect type to be "+ref.Type.String()+", but found "+value.Type.String())
		}
	}
	return nil
}

// Compare checks that actualJson is an array of records shaped like the reference. Keys listed
// in nullableKeys may also be null.
func (c *Comparator) Compare(actualJson []byte, nullableKeys []string) error {
	res := gjson.ParseBytes(actualJson)
	if !res.IsArray() {
		return errors.New("ambiguous comparison: actual is not an array")
	}

	comp := &Comparison{
		actualJson:    res,
		referenceJson: c.referenceJson,
		nullableKeys:  nullableKeys,
	}

	for _, value := range res.Array() {
		if err := comp.record(value); err != nil {
			return err
		}
	}
	return nil
}

// CompareValues checks that two reports hold the same records. Numbers may differ by at most
// epsilon; null only equals null.
func CompareValues(actualJson, expectedJson []byte, epsilon float64) error {
	actual, expected := gjson.ParseBytes(actualJson).Array(), gjson.ParseBytes(expectedJson).Array()
	if len(actual) != len(expected) {
		return errors.Errorf("record count mismatch: expect %d, but found %d", len(expected), len(actual))
	}

	for i := range expected {
		for _, key := range keys(expected[i]) {
			want, got := expected[i].Get(key), actual[i].Get(key)
			if want.Type != got.Type {
				return errors.Errorf("record %d key %q: expect %s, but found %s", i, key, want.Raw, got.Raw)
			}
			switch want.Type {
			case gjson.Number:
				if math.Abs(want.Float()-got.Float()) > epsilon {
					return errors.Errorf("record %d key %q: expect %s, but found %s", i, key, want.Raw, got.Raw)
				}
			case gjson.String:
				if want.String() != got.String() {
					return errors.Errorf("record %d key %q: expect %s, but found %s", i, key, want.Raw, got.Raw)
				}
			}
		}
	}
	return nil
}
