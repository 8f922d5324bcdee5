package node

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/jasonmoo/treeflect/command"
)

// Integer leaves. Arithmetic actions saturate at the bounds of the type.
type (
	Int    int
	Int8   int8
	Int16  int16
	Int32  int32
	Int64  int64
	Uint   uint
	Uint8  uint8
	Uint16 uint16
	Uint32 uint32
	Uint64 uint64
)

// Floating point leaves.
type (
	Float32 float32
	Float64 float64
)

func (n *Int) NodeStep(r command.Runner) string    { return stepInt(n, r, intInfo) }
func (n *Int8) NodeStep(r command.Runner) string   { return stepInt(n, r, int8Info) }
func (n *Int16) NodeStep(r command.Runner) string  { return stepInt(n, r, int16Info) }
func (n *Int32) NodeStep(r command.Runner) string  { return stepInt(n, r, int32Info) }
func (n *Int64) NodeStep(r command.Runner) string  { return stepInt(n, r, int64Info) }
func (n *Uint) NodeStep(r command.Runner) string   { return stepInt(n, r, uintInfo) }
func (n *Uint8) NodeStep(r command.Runner) string  { return stepInt(n, r, uint8Info) }
func (n *Uint16) NodeStep(r command.Runner) string { return stepInt(n, r, uint16Info) }
func (n *Uint32) NodeStep(r command.Runner) string { return stepInt(n, r, uint32Info) }
func (n *Uint64) NodeStep(r command.Runner) string { return stepInt(n, r, uint64Info) }

func (n *Float32) NodeStep(r command.Runner) string { return stepFloat(n, r, float32Info) }
func (n *Float64) NodeStep(r command.Runner) string { return stepFloat(n, r, float64Info) }

// MarshalJSON keeps []Uint8 encoding as a JSON array rather than base64.
func (n Uint8) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(n), 10), nil
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type float interface {
	~float32 | ~float64
}

// intSpec describes an integer leaf type.
type intSpec struct {
	name   string
	bits   int
	signed bool
	min    *big.Int
	max    *big.Int
	valid  string
}

func newIntSpec(name string, bits int, signed bool) intSpec {
	s := intSpec{name: name, bits: bits, signed: signed}
	one := big.NewInt(1)
	if signed {
		s.max = new(big.Int).Sub(new(big.Int).Lsh(one, uint(bits-1)), one)
		s.min = new(big.Int).Neg(new(big.Int).Lsh(one, uint(bits-1)))
	} else {
		s.max = new(big.Int).Sub(new(big.Int).Lsh(one, uint(bits)), one)
		s.min = new(big.Int)
	}
	s.valid = fmt.Sprintf("A number from %s to %s", groupDigits(s.min.String()), groupDigits(s.max.String()))
	return s
}

var (
	intInfo    = newIntSpec("int", strconv.IntSize, true)
	int8Info   = newIntSpec("int8", 8, true)
	int16Info  = newIntSpec("int16", 16, true)
	int32Info  = newIntSpec("int32", 32, true)
	int64Info  = newIntSpec("int64", 64, true)
	uintInfo   = newIntSpec("uint", strconv.IntSize, false)
	uint8Info  = newIntSpec("uint8", 8, false)
	uint16Info = newIntSpec("uint16", 16, false)
	uint32Info = newIntSpec("uint32", 32, false)
	uint64Info = newIntSpec("uint64", 64, false)
)

// groupDigits inserts thousands separators: -32768 becomes -32,768.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String()
}

func (s intSpec) invalid() string {
	return fmt.Sprintf("Invalid value for %s (needs to be: %s)", s.name, s.valid)
}

func (s intSpec) invalidDivisor() string {
	return fmt.Sprintf("Invalid value for %s (needs to be: %s, excluding 0)", s.name, s.valid)
}

func (s intSpec) help() string {
	return numberHelp(s.name, s.valid)
}

func (s intSpec) parse(text string) (*big.Int, bool) {
	if s.signed {
		v, err := strconv.ParseInt(text, 10, s.bits)
		if err != nil {
			return nil, false
		}
		return big.NewInt(v), true
	}
	v, err := strconv.ParseUint(text, 10, s.bits)
	if err != nil {
		return nil, false
	}
	return new(big.Int).SetUint64(v), true
}

func (s intSpec) clamp(x *big.Int) *big.Int {
	if x.Cmp(s.min) < 0 {
		return new(big.Int).Set(s.min)
	}
	if x.Cmp(s.max) > 0 {
		return new(big.Int).Set(s.max)
	}
	return x
}

func toBig[T integer](v T, signed bool) *big.Int {
	if signed {
		return big.NewInt(int64(v))
	}
	return new(big.Int).SetUint64(uint64(v))
}

func fromBig[T integer](x *big.Int, signed bool) T {
	if signed {
		return T(x.Int64())
	}
	return T(x.Uint64())
}

// bigFromFloat truncates f toward zero. NaN maps to 0 and infinities to
// values outside every integer range so that clamping saturates.
func bigFromFloat(f float64) *big.Int {
	switch {
	case math.IsNaN(f):
		return new(big.Int)
	case math.IsInf(f, 1):
		return new(big.Int).Lsh(big.NewInt(1), 65)
	case math.IsInf(f, -1):
		return new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 65))
	}
	i, _ := new(big.Float).SetFloat64(f).Int(nil)
	return i
}

func stepInt[T integer](v *T, r command.Runner, spec intSpec) string {
	tok := r.Step()
	switch tok.Kind {
	case command.KindGet:
		return toBig(*v, spec.signed).String()
	case command.KindSet:
		x, ok := spec.parse(tok.Payload)
		if !ok {
			return spec.invalid()
		}
		*v = fromBig[T](x, spec.signed)
		return ""
	case command.KindHelp:
		return spec.help()
	case command.KindCopyFrom:
		if spec.signed {
			r.Clipboard().CopyNumber(command.IntNumber(int64(*v)))
		} else {
			r.Clipboard().CopyNumber(command.UintNumber(uint64(*v)))
		}
		return ""
	case command.KindPasteTo:
		n, ok := r.Clipboard().PasteNumber()
		if !ok {
			return "Nothing to paste: no number has been copied"
		}
		*v = pasteInt[T](n, spec)
		return ""
	case command.KindSetDefault:
		*v = 0
		return ""
	case command.KindCustom:
		op, ok := arithmetic[tok.Name]
		if !ok {
			break
		}
		if len(tok.Args) != 1 {
			return argCount(tok, 1)
		}
		arg, ok := spec.parse(tok.Args[0])
		if op == opDivide && (!ok || arg.Sign() == 0) {
			return spec.invalidDivisor()
		}
		if !ok {
			return spec.invalid()
		}
		x := toBig(*v, spec.signed)
		switch op {
		case opAdd:
			x.Add(x, arg)
		case opSubtract:
			x.Sub(x, arg)
		case opMultiply:
			x.Mul(x, arg)
		case opDivide:
			x.Quo(x, arg)
		}
		*v = fromBig[T](spec.clamp(x), spec.signed)
		return ""
	}
	return Cannot(spec.name, tok)
}

// pasteInt converts a copied number by casting: integers wrap to the
// width of T, floats truncate and saturate.
func pasteInt[T integer](n command.Number, spec intSpec) T {
	switch n.Kind {
	case command.NumberFloat:
		return fromBig[T](spec.clamp(bigFromFloat(n.Float)), spec.signed)
	case command.NumberUint:
		return T(n.Uint)
	}
	return T(n.Int)
}

type arithmeticOp int

const (
	opAdd arithmeticOp = iota
	opSubtract
	opMultiply
	opDivide
)

var arithmetic = map[string]arithmeticOp{
	"add":      opAdd,
	"subtract": opSubtract,
	"multiply": opMultiply,
	"divide":   opDivide,
}

func argCount(tok command.Token, want int) string {
	return fmt.Sprintf("Action '%s' takes %d argument(s), got %d", tok.Name, want, len(tok.Args))
}

// floatSpec describes a floating point leaf type.
type floatSpec struct {
	name  string
	bits  int
	valid string
}

var (
	float32Info = floatSpec{name: "float32", bits: 32, valid: "A number with a decimal point"}
	float64Info = floatSpec{name: "float64", bits: 64, valid: "A higher precision number with a decimal point"}
)

func (s floatSpec) invalid() string {
	return fmt.Sprintf("Invalid value for %s (needs to be: %s)", s.name, s.valid)
}

func (s floatSpec) parse(text string) (float64, bool) {
	f, err := strconv.ParseFloat(text, s.bits)
	if err != nil {
		return 0, false
	}
	return f, true
}

func stepFloat[T float](v *T, r command.Runner, spec floatSpec) string {
	tok := r.Step()
	switch tok.Kind {
	case command.KindGet:
		return strconv.FormatFloat(float64(*v), 'f', -1, spec.bits)
	case command.KindSet:
		f, ok := spec.parse(tok.Payload)
		if !ok {
			return spec.invalid()
		}
		*v = T(f)
		return ""
	case command.KindHelp:
		return numberHelp(spec.name, spec.valid)
	case command.KindCopyFrom:
		r.Clipboard().CopyNumber(command.FloatNumber(float64(*v)))
		return ""
	case command.KindPasteTo:
		n, ok := r.Clipboard().PasteNumber()
		if !ok {
			return "Nothing to paste: no number has been copied"
		}
		*v = T(n.AsFloat64())
		return ""
	case command.KindSetDefault:
		*v = 0
		return ""
	case command.KindCustom:
		op, ok := arithmetic[tok.Name]
		if !ok {
			break
		}
		if len(tok.Args) != 1 {
			return argCount(tok, 1)
		}
		f, ok := spec.parse(tok.Args[0])
		if !ok {
			return spec.invalid()
		}
		arg := T(f)
		switch op {
		case opAdd:
			*v += arg
		case opSubtract:
			*v -= arg
		case opMultiply:
			*v *= arg
		case opDivide:
			*v /= arg
		}
		return ""
	}
	return Cannot(spec.name, tok)
}

func numberHelp(name, valid string) string {
	return fmt.Sprintf(`
%s Help

Valid values: %s

Commands:
*   help             - display this help
*   copy             - copy this value
*   paste            - paste the copied value here
*   get              - display value
*   set      $NUMBER - set to $NUMBER
*   add      $NUMBER - adds $NUMBER to this number
*   subtract $NUMBER - subtracts $NUMBER from this number
*   multiply $NUMBER - multiply this number with $NUMBER
*   divide   $NUMBER - divide this number by $NUMBER`, name, valid)
}
