package configuration

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var sizeRe = regexp.MustCompile(`^([1-9]\d*)((?:[kmgtKMGT]i?)?[bB])$`)

// ParseSizeString converts strings such as 512KB, 10MiB or 8Mb into a byte count.
// Bit units are rounded up to the next whole byte.
func ParseSizeString(s string) (int64, error) {
	if s == "" || s == "0" {
		return 0, nil
	}

	const (
		k  = 1000
		ki = 1024
	)

	parts := sizeRe.FindStringSubmatch(s)
	if len(parts) != 3 {
		return 0, errors.New("invalid size")
	}
	ns := parts[1]
	units := parts[2]

	n, err := strconv.ParseInt(ns, 10, 64)
	if err != nil {
		return 0, err
	}

	var (
		mult      int64 = 1
		base      int64 = k
		usingBits       = units[len(units)-1] == 'b'
	)
	if len(units) == 3 {
		base = ki
	}
	if 1 < len(units) {
		switch strings.ToLower(units[:1]) {
		case "k":
			mult = base
		case "m":
			mult = base * base
		case "g":
			mult = base * base * base
		case "t":
			mult = base * base * base * base
		}
	}

	if usingBits {
		if 1 < mult {
			mult /= 8
		} else {
			bumpByOne := n%8 != 0
			n /= 8
			if bumpByOne {
				n += 1
			}
		}
	}

	if n > math.MaxInt64/mult {
		return 0, errors.New("size too large")
	}

	return mult * n, nil
}
