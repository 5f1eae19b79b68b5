package codec

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math"

	"github.com/emberworks/scribe/script"
)

// Encode serializes a tree into the binary object format.
func Encode(tree *script.Tree, opts EncodeOptions) ([]byte, error) {
	var payload bytes.Buffer
	w := &writer{buf: &payload}
	for _, obj := range tree.Objects() {
		w.object(obj)
	}

	stored := payload.Bytes()
	var flags Flags
	if opts.Compress {
		stored = zstdEncoder.EncodeAll(stored, nil)
		flags |= FlagCompressed
	}
	if opts.Checksum {
		flags |= FlagHasCRC
	}

	out := make([]byte, 0, headerSize+4+len(stored))
	out = append(out, Magic[:]...)
	out = append(out, Version, byte(flags))
	if opts.Checksum {
		out = binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(stored))
	}
	out = append(out, stored...)
	return out, nil
}

// writer emits the section-token stream. It mirrors the reader exactly;
// keep the two in sync when the format grows.
type writer struct {
	buf *bytes.Buffer
}

func (w *writer) object(o *script.Object) {
	w.buf.WriteByte(sectionObject)
	w.str(o.Name())
	w.str(o.Class())
	w.u32(uint32(len(o.Properties())))
	w.u32(uint32(len(o.Children())))
	for _, p := range o.Properties() {
		w.property(p)
	}
	for _, c := range o.Children() {
		w.object(c)
	}
}

func (w *writer) property(p *script.Property) {
	w.buf.WriteByte(sectionProperty)
	w.str(p.Name())
	w.u32(uint32(len(p.Arguments())))
	for _, a := range p.Arguments() {
		w.argument(a)
	}
}

func (w *writer) argument(a script.Argument) {
	w.buf.WriteByte(sectionArgument)
	v := a.Value()
	w.buf.WriteByte(byte(v.Kind()))
	v.Visit(script.Visitor{
		Boolean: func(b bool) {
			if b {
				w.buf.WriteByte(1)
			} else {
				w.buf.WriteByte(0)
			}
		},
		Integer: func(n int64) {
			w.u64(uint64(n))
		},
		FloatingPoint: func(f float64) {
			w.f64(f)
		},
		String: func(s string) {
			w.str(s)
		},
		Enumerable: func(tag string) {
			w.str(tag)
		},
		Color: func(c script.Color) {
			w.f64(c.R)
			w.f64(c.G)
			w.f64(c.B)
			w.f64(c.A)
		},
		Vector2: func(v2 script.Vector2) {
			w.f64(v2.X)
			w.f64(v2.Y)
		},
		Vector3: func(v3 script.Vector3) {
			w.f64(v3.X)
			w.f64(v3.Y)
			w.f64(v3.Z)
		},
	})
	w.str(v.Unit())
}

func (w *writer) u32(n uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	w.buf.Write(b[:])
}

func (w *writer) u64(n uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	w.buf.Write(b[:])
}

func (w *writer) f64(f float64) {
	w.u64(math.Float64bits(f))
}

func (w *writer) str(s string) {
	w.u32(uint32(len(s)))
	w.buf.WriteString(s)
}
