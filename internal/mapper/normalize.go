package mapper

import (
	"time"

	"aiswei_bridge/internal/types"
)

// TimestampLayout formats the invocation time (local, microsecond precision).
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Record is a flat telemetry mapping keyed by output name.
type Record map[string]any

// Normalize extracts the first device from a latest telemetry reply and
// converts every known field. It never fails: an unsuccessful reply, an
// empty device list or a malformed device yields an empty Record.
func Normalize(resp *types.Response) Record {
	if !resp.Success() {
		return Record{}
	}

	device, ok := SelectDevice(resp.Data())
	if !ok {
		return Record{}
	}

	pac := ToFloat(device[RawActivePower], 0)

	rec := Record{
		KeyPower:      pac / 1000,
		KeyDeviceName: ToText(device[RawSerial], UnknownDevice),
		KeyTimestamp:  ToText(device[RawTime], ""),
		KeyStatus:     deviceStatus(device[RawCurrentState]),
	}
	for _, f := range Fields {
		rec[f.Key] = Scaled(device[f.Key], f.Scale)
	}

	return rec
}

// SelectDevice returns the first record of a device list, or the data
// itself when it is a single record.
func SelectDevice(data any) (map[string]any, bool) {
	switch d := data.(type) {
	case []any:
		if len(d) == 0 {
			return nil, false
		}
		dev, ok := d[0].(map[string]any)
		return dev, ok
	case map[string]any:
		if len(d) == 0 {
			return nil, false
		}
		return d, true
	}
	return nil, false
}

// Template returns the default record every output starts from.
func Template(now time.Time) Record {
	rec := Record{
		KeyTimestamp:  now.Format(TimestampLayout),
		KeySuccess:    false,
		KeyPower:      0.0,
		KeyDeviceName: UnknownDevice,
		KeyStatus:     StatusUnknown,
	}
	for _, f := range Fields {
		rec[f.Key] = 0.0
	}
	return rec
}

// Merge copies every entry of src over dst and returns dst.
func Merge(dst, src Record) Record {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Float returns a numeric entry, or 0 when absent.
func (r Record) Float(key string) float64 {
	return ToFloat(r[key], 0)
}

// Text returns a string entry, or "" when absent.
func (r Record) Text(key string) string {
	return ToText(r[key], "")
}

func deviceStatus(v any) string {
	if ToInt(v, 0) == 1 {
		return StatusNormal
	}
	return StatusOffline
}
