// Package mapper turns raw AISWEI telemetry into flat, unit corrected records.
package mapper

// Output keys that are not plain scaled fields.
const (
	KeyPower      = "power"
	KeyDeviceName = "device_name"
	KeyTimestamp  = "timestamp"
	KeyStatus     = "status"
	KeySuccess    = "success"
)

// Raw device record keys with special handling.
const (
	RawSerial       = "sn"
	RawTime         = "tim"
	RawCurrentState = "currentState"
	RawActivePower  = "pac"
)

// Status values derived from currentState.
const (
	StatusNormal  = "Normal"
	StatusOffline = "Offline"
	StatusUnknown = "unknown"
	UnknownDevice = "Unknown"
)

// Field describes one numeric telemetry value. The vendor sends fixed point
// integers; Scale is the divisor that restores the unit.
type Field struct {
	Key    string
	Scale  float64
	Unit   string
	Metric string
	Help   string
}

// Fields lists every numeric value copied from the device record, in the
// order the vendor documents them.
var Fields = []Field{
	// Power
	{Key: "pac", Scale: 1, Unit: "W", Metric: "ac_active_power_watts", Help: "Active power (W)"},
	{Key: "prc", Scale: 1, Unit: "W", Metric: "ac_reactive_power_watts", Help: "Reactive power (W)"},
	{Key: "sac", Scale: 1, Unit: "W", Metric: "ac_apparent_power_watts", Help: "Apparent power (W)"},
	{Key: "pf", Scale: 100, Metric: "power_factor", Help: "Power factor"},

	// Energy
	{Key: "hto", Scale: 1, Unit: "h", Metric: "grid_connection_hours", Help: "Grid connection duration (h)"},
	{Key: "etd", Scale: 10, Unit: "kWh", Metric: "energy_today_kwh", Help: "Generation today (kWh)"},
	{Key: "eto", Scale: 10, Unit: "kWh", Metric: "energy_total_kwh", Help: "Generation total (kWh)"},

	// DC input (MPPT)
	{Key: "v1", Scale: 10, Unit: "V", Metric: "mppt1_voltage_volts", Help: "MPPT 1 voltage (V)"},
	{Key: "v2", Scale: 10, Unit: "V", Metric: "mppt2_voltage_volts", Help: "MPPT 2 voltage (V)"},
	{Key: "v3", Scale: 10, Unit: "V", Metric: "mppt3_voltage_volts", Help: "MPPT 3 voltage (V)"},
	{Key: "i1", Scale: 100, Unit: "A", Metric: "mppt1_current_amperes", Help: "MPPT 1 current (A)"},
	{Key: "i2", Scale: 100, Unit: "A", Metric: "mppt2_current_amperes", Help: "MPPT 2 current (A)"},
	{Key: "i3", Scale: 100, Unit: "A", Metric: "mppt3_current_amperes", Help: "MPPT 3 current (A)"},

	// String currents
	{Key: "s1", Scale: 10, Unit: "A", Metric: "string1_current_amperes", Help: "String 1 current (A)"},
	{Key: "s2", Scale: 10, Unit: "A", Metric: "string2_current_amperes", Help: "String 2 current (A)"},
	{Key: "s3", Scale: 10, Unit: "A", Metric: "string3_current_amperes", Help: "String 3 current (A)"},

	// Temperatures
	{Key: "cf", Scale: 10, Unit: "°C", Metric: "heatsink_temperature_celsius", Help: "Heat sink temperature (°C)"},
	{Key: "tu", Scale: 10, Unit: "°C", Metric: "phase_u_temperature_celsius", Help: "U phase temperature (°C)"},
	{Key: "tv", Scale: 10, Unit: "°C", Metric: "phase_v_temperature_celsius", Help: "V phase temperature (°C)"},
	{Key: "tw", Scale: 10, Unit: "°C", Metric: "phase_w_temperature_celsius", Help: "W phase temperature (°C)"},
	{Key: "cb", Scale: 10, Unit: "°C", Metric: "boost_temperature_celsius", Help: "Boost temperature (°C)"},

	{Key: "bv", Scale: 10, Unit: "V", Metric: "bus_voltage_volts", Help: "Bus voltage (V)"},

	// AC output
	{Key: "va1", Scale: 10, Unit: "V", Metric: "ac1_voltage_volts", Help: "AC voltage phase 1 (V)"},
	{Key: "va2", Scale: 10, Unit: "V", Metric: "ac2_voltage_volts", Help: "AC voltage phase 2 (V)"},
	{Key: "va3", Scale: 10, Unit: "V", Metric: "ac3_voltage_volts", Help: "AC voltage phase 3 (V)"},
	{Key: "ia1", Scale: 10, Unit: "A", Metric: "ac1_current_amperes", Help: "AC current phase 1 (A)"},
	{Key: "ia2", Scale: 10, Unit: "A", Metric: "ac2_current_amperes", Help: "AC current phase 2 (A)"},
	{Key: "ia3", Scale: 10, Unit: "A", Metric: "ac3_current_amperes", Help: "AC current phase 3 (A)"},
	{Key: "fac", Scale: 100, Unit: "Hz", Metric: "grid_frequency_hertz", Help: "Grid frequency (Hz)"},

	// Errors and warnings
	{Key: "er", Scale: 1, Metric: "error_code", Help: "Error code"},
	{Key: "wn0", Scale: 1, Metric: "warning_code", Help: "Warning code"},

	// Battery block. Not covered by the API documentation; names follow the
	// inverter's local interface where known, the rest are raw passthrough.
	{Key: "bat0", Scale: 1, Unit: "W", Metric: "pv_power_watts", Help: "PV power (W)"},
	{Key: "bat1", Scale: 10, Unit: "kWh", Metric: "feed_in_today_kwh", Help: "Feed-in today (kWh)"},
	{Key: "bat2", Scale: 10, Unit: "kWh", Metric: "feed_in_total_kwh", Help: "Feed-in total (kWh)"},
	{Key: "bat3", Scale: 1, Metric: "battery_status", Help: "Battery status"},
	{Key: "bat4", Scale: 1, Metric: "battery_bat4_raw", Help: "Battery register bat4, meaning unconfirmed"},
	{Key: "bat5", Scale: 1, Metric: "battery_bat5_raw", Help: "Battery register bat5, meaning unconfirmed"},
	{Key: "bat6", Scale: 100, Unit: "V", Metric: "battery_voltage_volts", Help: "Battery voltage (V)"},
	{Key: "bat7", Scale: 10, Unit: "A", Metric: "battery_current_amperes", Help: "Battery current (A)"},
	{Key: "bat8", Scale: 1, Unit: "W", Metric: "battery_power_watts", Help: "Battery power (W)"},
	{Key: "bat9", Scale: 10, Unit: "°C", Metric: "battery_temperature_celsius", Help: "Battery temperature (°C)"},
	{Key: "bat10", Scale: 1, Unit: "%", Metric: "battery_state_of_charge_percent", Help: "Battery state of charge (%)"},
	{Key: "bat11", Scale: 1, Unit: "%", Metric: "battery_state_of_health_percent", Help: "Battery state of health (%)"},
	{Key: "bat12", Scale: 10, Unit: "kWh", Metric: "battery_charge_today_kwh", Help: "Battery charge today (kWh)"},
	{Key: "bat13", Scale: 10, Unit: "kWh", Metric: "battery_discharge_today_kwh", Help: "Battery discharge today (kWh)"},
	{Key: "bat14", Scale: 1, Metric: "battery_bat14_raw", Help: "Battery register bat14, meaning unconfirmed"},
	{Key: "bat15", Scale: 10, Unit: "A", Metric: "battery_max_charge_current_amperes", Help: "Battery max input current (A)"},
	{Key: "bat16", Scale: 10, Unit: "A", Metric: "battery_max_discharge_current_amperes", Help: "Battery max output current (A)"},
	{Key: "bat17", Scale: 10, Unit: "kWh", Metric: "battery_grid_charge_today_kwh", Help: "Battery charge from grid today (kWh)"},
	{Key: "bat18", Scale: 10, Unit: "kWh", Metric: "battery_grid_charge_total_kwh", Help: "Battery charge from grid total (kWh)"},

	// Smart meter
	{Key: "meterPow", Scale: 1, Unit: "W", Metric: "meter_power_watts", Help: "Grid power at the meter (W)"},
	{Key: "meterIed", Scale: 1, Unit: "kWh", Metric: "meter_import_today_kwh", Help: "Grid import today (kWh)"},
	{Key: "meterOed", Scale: 1, Unit: "kWh", Metric: "meter_export_today_kwh", Help: "Grid export today (kWh)"},
	{Key: "meterIet", Scale: 1, Unit: "kWh", Metric: "meter_import_total_kwh", Help: "Grid import total (kWh)"},
	{Key: "meterOet", Scale: 1, Unit: "kWh", Metric: "meter_export_total_kwh", Help: "Grid export total (kWh)"},

	// System
	{Key: "powerRatio", Scale: 1, Metric: "power_ratio", Help: "Power ratio"},
	{Key: "csq", Scale: 1, Metric: "signal_quality", Help: "Signal quality"},
}
