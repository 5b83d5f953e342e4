package runtime

import (
	"net/netip"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/reoring/zodforge/internal/ir"
)

// Format patterns. All RE2-safe; the same sources back the rendered regexes
// when the target chain has no native method.
var (
	reEmail = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
	reUUID  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	reCUID  = regexp.MustCompile(`^c[0-9a-z]{8,}$`)
	reCUID2 = regexp.MustCompile(`^[a-z][0-9a-z]{7,31}$`)
	reULID  = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
)

func checkFormat(op *ir.Op, s string) bool {
	switch op.Kind {
	case ir.OpEmail:
		return reEmail.MatchString(s)
	case ir.OpURL:
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	case ir.OpUUID:
		return reUUID.MatchString(s)
	case ir.OpCUID:
		return reCUID.MatchString(s)
	case ir.OpCUID2:
		return reCUID2.MatchString(s)
	case ir.OpULID:
		return reULID.MatchString(s)
	case ir.OpDatetime:
		return datetimeRegexp(op.DatetimeOffset, op.DatetimePrecision).MatchString(s)
	case ir.OpIP:
		return checkIP(s, op.IPVersion)
	}
	return true
}

func checkIP(s, version string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return false
	}
	switch version {
	case "v6":
		return addr.Is6() && !addr.Is4In6()
	default:
		return addr.Is4()
	}
}

var (
	datetimeMu    sync.Mutex
	datetimeCache = map[string]*regexp.Regexp{}
)

// datetimeRegexp builds the ISO-8601 acceptance pattern for the given
// offset/precision options. Cached per option pair so concurrent validators
// share one compilation.
func datetimeRegexp(offset bool, precision *int) *regexp.Regexp {
	key := strconv.FormatBool(offset)
	if precision != nil {
		key += "/" + strconv.Itoa(*precision)
	}
	datetimeMu.Lock()
	defer datetimeMu.Unlock()
	if re, ok := datetimeCache[key]; ok {
		return re
	}

	b := &strings.Builder{}
	b.WriteString(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)
	switch {
	case precision == nil:
		b.WriteString(`(\.\d+)?`)
	case *precision == 0:
		// no fractional seconds
	default:
		b.WriteString(`\.\d{` + strconv.Itoa(*precision) + `}`)
	}
	if offset {
		b.WriteString(`(Z|[+-]\d{2}:\d{2})`)
	} else {
		b.WriteString(`Z`)
	}
	b.WriteString(`$`)

	re := regexp.MustCompile(b.String())
	datetimeCache[key] = re
	return re
}
