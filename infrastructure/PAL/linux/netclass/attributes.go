package netclass

import (
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"linkwatch/domain/link"

	"github.com/prometheus/procfs/sysfs"
	"go.uber.org/zap"
)

var errMalformedAttribute = errors.New("malformed attribute")

// AttributeReader reads operstate, carrier, address and speed of one interface.
type AttributeReader struct {
	root   string
	logger *zap.Logger
}

func NewAttributeReader(root string, logger *zap.Logger) *AttributeReader {
	return &AttributeReader{root: root, logger: logger}
}

// LinkAttributes never fails because of a single attribute: unreadable values are
// left nil. It returns an error only when no attribute at all could be read.
func (r *AttributeReader) LinkAttributes(name string) (link.Attributes, error) {
	fs, err := sysfs.NewFS(r.root)
	if err == nil {
		iface, classErr := fs.NetClassByIface(name)
		if classErr == nil {
			if attrs := fromNetClass(iface); attrs.Any() {
				return attrs, nil
			}
		} else {
			r.logger.Debug("bulk net class read failed, reading attributes one by one",
				zap.String("iface", name), zap.Error(classErr))
		}
	}
	return r.readEach(name)
}

func fromNetClass(iface *sysfs.NetClassIface) link.Attributes {
	attrs := link.Attributes{
		OperState: link.ParseOperState(iface.OperState),
		MAC:       parseMAC(iface.Address),
	}
	if iface.Carrier != nil {
		attrs.Carrier, _ = parseCarrier(strconv.FormatInt(*iface.Carrier, 10))
	}
	if iface.Speed != nil {
		attrs.SpeedMbps = speedFromInt(*iface.Speed)
	}
	return attrs
}

func (r *AttributeReader) readEach(name string) (link.Attributes, error) {
	dir := filepath.Join(r.root, "class", "net", name)
	var (
		attrs link.Attributes
		errs  []error
	)

	if v, err := readAttribute(dir, "operstate"); err != nil {
		errs = append(errs, err)
	} else {
		attrs.OperState = link.ParseOperState(v)
	}

	if v, err := readAttribute(dir, "carrier"); err != nil {
		errs = append(errs, err)
	} else if attrs.Carrier, err = parseCarrier(v); err != nil {
		errs = append(errs, err)
	}

	if v, err := readAttribute(dir, "address"); err != nil {
		errs = append(errs, err)
	} else {
		attrs.MAC = parseMAC(v)
	}

	if v, err := readAttribute(dir, "speed"); err != nil {
		errs = append(errs, err)
	} else if n, err := strconv.ParseInt(v, 10, 64); err != nil {
		errs = append(errs, fmt.Errorf("%w: speed %q", errMalformedAttribute, v))
	} else {
		attrs.SpeedMbps = speedFromInt(n)
	}

	for _, err := range errs {
		r.logger.Debug("link attribute unreadable", zap.String("iface", name), zap.Error(err))
	}
	if !attrs.Any() {
		return attrs, fmt.Errorf("read link attributes of %s: %w", name, errors.Join(errs...))
	}
	return attrs, nil
}

func readAttribute(dir, attr string) (string, error) {
	b, err := os.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func parseCarrier(v string) (*bool, error) {
	var b bool
	switch v {
	case "0":
		b = false
	case "1":
		b = true
	default:
		return nil, fmt.Errorf("%w: carrier %q", errMalformedAttribute, v)
	}
	return &b, nil
}

func parseMAC(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	hw, err := net.ParseMAC(v)
	if err != nil {
		return nil
	}
	s := hw.String()
	return &s
}

// speedFromInt drops the -1 (and other negatives) drivers report for a down or unknown link.
func speedFromInt(n int64) *uint32 {
	if n < 0 || n > math.MaxUint32 {
		return nil
	}
	v := uint32(n)
	return &v
}
