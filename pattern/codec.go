package pattern

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/wippyai/bitmatch/bits"
	"github.com/wippyai/bitmatch/errors"
)

// structPlan maps struct members to pattern fields. Plans are cached per
// (struct type, pattern) pair.
type structPlan struct {
	members []memberPlan
}

type memberPlan struct {
	name   string
	index  int // struct field index
	pos    int // index into Pattern.fields
	count  uint
	lowest uint
	kind   reflect.Kind
	signed bool
}

type planKey struct {
	goType  reflect.Type
	pattern any
}

var plans sync.Map // planKey -> *structPlan

// Unmarshal stores the fields of word into the struct pointed to by dst.
//
// Struct members are bound with a `bits:"t"` tag naming a single field tag
// rune. A tag that appears in several runs binds to the first. Adding
// ",signed" sign-extends the field into a signed integer member. Members of
// kind bool require a 1-bit field. Pattern fields without a member are
// ignored. Unmarshal does not check Match.
func Unmarshal[T bits.Word](p *Pattern[T], word T, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer {
		return errors.TypeMismatch(errors.PhaseDecode, nil, fmt.Sprintf("%T", dst), "destination must be a pointer to a struct")
	}
	if rv.IsNil() {
		return errors.NilPointer(errors.PhaseDecode, nil, rv.Type().String())
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return errors.TypeMismatch(errors.PhaseDecode, nil, elem.Type().String(), "destination must point to a struct")
	}

	plan, err := planFor(p, elem.Type(), errors.PhaseDecode)
	if err != nil {
		return err
	}

	for _, m := range plan.members {
		raw := uint64(bits.GetField(word, m.lowest, m.count))
		fv := elem.Field(m.index)
		switch m.kind {
		case reflect.Bool:
			fv.SetBool(raw != 0)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			fv.SetUint(raw)
		default:
			if m.signed {
				fv.SetInt(signExtend(raw, m.count))
			} else {
				fv.SetInt(int64(raw))
			}
		}
	}
	return nil
}

// Marshal builds a word from the literal bits of p and the tagged members of
// src, a struct or pointer to struct. Fields without a member are zero.
func Marshal[T bits.Word](p *Pattern[T], src any) (T, error) {
	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0, errors.NilPointer(errors.PhaseEncode, nil, rv.Type().String())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", src), "source must be a struct")
	}

	plan, err := planFor(p, rv.Type(), errors.PhaseEncode)
	if err != nil {
		return 0, err
	}

	values := make([]T, len(p.fields))
	for _, m := range plan.members {
		raw, err := memberBits(rv.Field(m.index), m)
		if err != nil {
			err.Path = []string{rv.Type().Name(), m.name}
			err.Pattern = p.text
			return 0, err
		}
		values[m.pos] = T(raw)
	}
	return p.Encode(values...)
}

func memberBits(fv reflect.Value, m memberPlan) (uint64, *errors.Error) {
	limit := uint64(bits.LowMask[uint64](m.count))
	switch m.kind {
	case reflect.Bool:
		if fv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v := fv.Uint()
		if v > limit {
			return 0, errors.Overflow(errors.PhaseEncode, nil, v, m.count)
		}
		return v, nil
	default:
		v := fv.Int()
		if m.signed {
			lo, hi := signedRange(m.count)
			if v < lo || v > hi {
				return 0, errors.Overflow(errors.PhaseEncode, nil, v, m.count)
			}
			return uint64(v) & limit, nil
		}
		if v < 0 || uint64(v) > limit {
			return 0, errors.Overflow(errors.PhaseEncode, nil, v, m.count)
		}
		return uint64(v), nil
	}
}

func planFor[T bits.Word](p *Pattern[T], goType reflect.Type, phase errors.Phase) (*structPlan, error) {
	key := planKey{goType: goType, pattern: p}
	if cached, ok := plans.Load(key); ok {
		return cached.(*structPlan), nil
	}

	plan := &structPlan{}
	for i := 0; i < goType.NumField(); i++ {
		sf := goType.Field(i)
		tag, ok := sf.Tag.Lookup("bits")
		if !ok || tag == "-" {
			continue
		}
		path := []string{goType.Name(), sf.Name}
		if !sf.IsExported() {
			return nil, errors.InvalidData(phase, path, "bits tag on unexported field")
		}

		name, opts, _ := strings.Cut(tag, ",")
		r, size := utf8.DecodeRuneInString(name)
		if size == 0 || size != len(name) || !isTag(r) {
			return nil, errors.InvalidData(phase, path, fmt.Sprintf("bits tag %q must name one field tag", name))
		}

		pos := -1
		for j, f := range p.fields {
			if f.Tag == r {
				pos = j
				break
			}
		}
		if pos < 0 {
			return nil, errors.FieldUnknown(phase, path, name)
		}

		m := memberPlan{
			name:   sf.Name,
			index:  i,
			pos:    pos,
			count:  p.fields[pos].Count,
			lowest: p.fields[pos].Lowest,
			kind:   sf.Type.Kind(),
			signed: opts == "signed",
		}
		if err := checkMember(sf.Type, m, path, phase); err != nil {
			return nil, err
		}
		plan.members = append(plan.members, m)
	}

	actual, _ := plans.LoadOrStore(key, plan)
	return actual.(*structPlan), nil
}

func checkMember(t reflect.Type, m memberPlan, path []string, phase errors.Phase) error {
	switch m.kind {
	case reflect.Bool:
		if m.count != 1 {
			return errors.TypeMismatch(phase, path, t.String(), fmt.Sprintf("bool needs a 1-bit field, got %d bits", m.count))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if m.signed {
			return errors.TypeMismatch(phase, path, t.String(), "signed option needs a signed integer")
		}
		if uint(t.Bits()) < m.count {
			return errors.TypeMismatch(phase, path, t.String(), fmt.Sprintf("too narrow for %d-bit field", m.count))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		need := m.count
		if !m.signed {
			need++
		}
		if uint(t.Bits()) < need {
			return errors.TypeMismatch(phase, path, t.String(), fmt.Sprintf("too narrow for %d-bit field", m.count))
		}
	default:
		return errors.TypeMismatch(phase, path, t.String(), "field member must be an integer or bool")
	}
	return nil
}

func signExtend(raw uint64, count uint) int64 {
	if count == 0 {
		return 0
	}
	shift := 64 - count
	return int64(raw<<shift) >> shift
}

func signedRange(count uint) (lo, hi int64) {
	if count == 0 {
		return 0, 0
	}
	if count >= 64 {
		return -1 << 63, 1<<63 - 1
	}
	return -1 << (count - 1), 1<<(count-1) - 1
}
