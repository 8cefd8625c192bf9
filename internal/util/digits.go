package util

const smalls = "00010203040506070809" +
	"10111213141516171819" +
	"20212223242526272829" +
	"30313233343536373839" +
	"40414243444546474849" +
	"50515253545556575859" +
	"60616263646566676869" +
	"70717273747576777879" +
	"80818283848586878889" +
	"90919293949596979899"

// AppendInt appends v in decimal, zero padded to at least width digits.
// Negative values get a leading '-' before the padded magnitude.
func AppendInt(b []byte, v int, width int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	u := uint64(v)
	if width == 2 && u < 100 {
		i := u * 2
		return append(b, smalls[i], smalls[i+1])
	}
	if u == 0 && width <= 1 {
		return append(b, '0')
	}

	var buf [20]byte
	i := len(buf)
	for u > 0 || width > 0 {
		i--
		q := u / 10
		buf[i] = byte('0' + u - q*10)
		u = q
		width--
	}
	return append(b, buf[i:]...)
}

// Append2 appends a value in [0, 99] as exactly two digits.
func Append2(b []byte, v int) []byte {
	i := v * 2
	return append(b, smalls[i], smalls[i+1])
}
