package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/emberworks/scribe/script"
)

// Decode deserializes a binary object file into a tree. Any truncation
// or corruption fails the whole decode; a partial tree is never
// returned.
func Decode(data []byte) (*script.Tree, error) {
	if len(data) < headerSize {
		return nil, &ParseError{Reason: "input shorter than header", Offset: 0}
	}
	if !bytes.Equal(data[:4], Magic[:]) {
		return nil, &ParseError{Reason: "bad magic", Offset: 0}
	}
	if data[4] != Version {
		return nil, &ParseError{Reason: fmt.Sprintf("unsupported version %d", data[4]), Offset: 4}
	}
	flags := Flags(data[5])
	rest := data[headerSize:]

	if flags&FlagHasCRC != 0 {
		if len(rest) < 4 {
			return nil, &ParseError{Reason: "truncated CRC", Offset: headerSize}
		}
		want := binary.LittleEndian.Uint32(rest[:4])
		rest = rest[4:]
		if got := crc32.ChecksumIEEE(rest); got != want {
			return nil, &CRCMismatchError{Expected: want, Got: got}
		}
	}

	if flags&FlagCompressed != 0 {
		raw, err := zstdDecoder.DecodeAll(rest, nil)
		if err != nil {
			return nil, fmt.Errorf("codec: decompress payload: %w", err)
		}
		rest = raw
	}
	if len(rest) > maxPayload {
		return nil, &ParseError{Reason: "payload exceeds size limit", Offset: headerSize}
	}

	r := &reader{data: rest}
	var objects []*script.Object
	for !r.done() {
		obj, err := r.object()
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return script.NewTree(objects...), nil
}

// minArgSize is the smallest possible argument section: token byte,
// kind byte, one payload byte and an empty unit length word.
const minArgSize = 1 + 1 + 1 + 4

// reader walks the section-token stream, bounds-checking every read.
type reader struct {
	data []byte
	off  int
}

func (r *reader) done() bool {
	return r.off >= len(r.data)
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) fail(format string, args ...interface{}) error {
	return &ParseError{Reason: fmt.Sprintf(format, args...), Offset: r.off}
}

func (r *reader) object() (*script.Object, error) {
	if err := r.expect(sectionObject, "object"); err != nil {
		return nil, err
	}
	name, err := r.str()
	if err != nil {
		return nil, err
	}
	class, err := r.str()
	if err != nil {
		return nil, err
	}
	propCount, err := r.count("property count")
	if err != nil {
		return nil, err
	}
	childCount, err := r.count("object count")
	if err != nil {
		return nil, err
	}

	obj := script.NewObject(name, class)
	for i := 0; i < propCount; i++ {
		p, err := r.property()
		if err != nil {
			return nil, err
		}
		obj.WithProperties(p)
	}
	for i := 0; i < childCount; i++ {
		c, err := r.object()
		if err != nil {
			return nil, err
		}
		obj.WithChildren(c)
	}
	return obj, nil
}

func (r *reader) property() (*script.Property, error) {
	if err := r.expect(sectionProperty, "property"); err != nil {
		return nil, err
	}
	name, err := r.str()
	if err != nil {
		return nil, err
	}
	argCount, err := r.count("argument count")
	if err != nil {
		return nil, err
	}
	// Grow by append rather than trusting the claimed count: a
	// dishonest count must not turn a few input bytes into a huge
	// allocation before parsing rejects it. Legitimate honest counts
	// never exceed remaining/minArgSize anyway.
	var values []script.Value
	for i := 0; i < argCount; i++ {
		v, err := r.argument()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return script.NewProperty(name, values...), nil
}

func (r *reader) argument() (script.Value, error) {
	var zero script.Value
	if err := r.expect(sectionArgument, "argument"); err != nil {
		return zero, err
	}
	kind, err := r.u8()
	if err != nil {
		return zero, err
	}

	var val script.Value
	switch script.ValueKind(kind) {
	case script.KindBoolean:
		b, err := r.u8()
		if err != nil {
			return zero, err
		}
		val = script.Bool(b != 0)
	case script.KindInteger:
		n, err := r.u64()
		if err != nil {
			return zero, err
		}
		val = script.Int(int64(n))
	case script.KindFloatingPoint:
		f, err := r.f64()
		if err != nil {
			return zero, err
		}
		val = script.Float(f)
	case script.KindString:
		s, err := r.str()
		if err != nil {
			return zero, err
		}
		val = script.Str(s)
	case script.KindEnumerable:
		s, err := r.str()
		if err != nil {
			return zero, err
		}
		val = script.Enum(s)
	case script.KindColor:
		c, err := r.f64n(4)
		if err != nil {
			return zero, err
		}
		val = script.Rgba(c[0], c[1], c[2], c[3])
	case script.KindVector2:
		c, err := r.f64n(2)
		if err != nil {
			return zero, err
		}
		val = script.Vec2(c[0], c[1])
	case script.KindVector3:
		c, err := r.f64n(3)
		if err != nil {
			return zero, err
		}
		val = script.Vec3(c[0], c[1], c[2])
	default:
		return zero, r.fail("invalid value kind %d", kind)
	}

	unit, err := r.str()
	if err != nil {
		return zero, err
	}
	if unit != "" {
		val = val.WithUnit(unit)
	}
	return val, nil
}

func (r *reader) expect(token byte, what string) error {
	b, err := r.u8()
	if err != nil {
		return err
	}
	if b != token {
		r.off--
		return r.fail("expected %s section, got token %#02x", what, b)
	}
	return nil
}

// count reads a u32 count and sanity-checks it against the remaining
// input: every nested unit occupies at least one byte, so a count
// larger than what is left cannot be honest.
func (r *reader) count(what string) (int, error) {
	n, err := r.u32()
	if err != nil {
		return 0, err
	}
	if int64(n) > int64(r.remaining()) {
		return 0, r.fail("%s %d exceeds remaining input", what, n)
	}
	return int(n), nil
}

func (r *reader) u8() (byte, error) {
	if r.remaining() < 1 {
		return 0, r.fail("unexpected end of input")
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *reader) u32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, r.fail("unexpected end of input")
	}
	n := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return n, nil
}

func (r *reader) u64() (uint64, error) {
	if r.remaining() < 8 {
		return 0, r.fail("unexpected end of input")
	}
	n := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return n, nil
}

func (r *reader) f64() (float64, error) {
	n, err := r.u64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(n), nil
}

func (r *reader) f64n(n int) ([4]float64, error) {
	var out [4]float64
	for i := 0; i < n; i++ {
		f, err := r.f64()
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}

func (r *reader) str() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	if int64(n) > int64(r.remaining()) {
		return "", r.fail("string length %d exceeds remaining input", n)
	}
	s := string(r.data[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}
