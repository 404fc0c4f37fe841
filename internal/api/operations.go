package api

import (
	"context"
	"fmt"
	"time"

	"aiswei_bridge/internal/types"
)

// Operation names as published in the vendor API list.
const (
	OpPlanList             = "getPlanListPro"
	OpPlantOverview        = "getPlantOverviewPro"
	OpPlantOutput          = "getPlantOutputPro"
	OpPlantEvent           = "getPlantEventPro"
	OpDeviceList           = "getDeviceListPro"
	OpLocation             = "getLocationPro"
	OpLastTsData           = "getLastTsDataPro"
	OpInverterDataPage     = "getInverterDataPagePro"
	OpInverterEToday       = "getInverterETodayPro"
	OpInverterHisErrorPage = "getInverterHisErrorPagePro"
	OpInverterCurrentError = "getInverterCurrentErrorPro"
	OpInverterOverview     = "getInverterOverviewPro"
	OpInverterRecover      = "getInverterRecoverStatusPro"
	OpCreateStation        = "createstationPro"
)

// dateLayout is the vendor date format (YYYY-MM-DD).
const dateLayout = "2006-01-02"

// Operation is one entry of the static endpoint catalog.
type Operation struct {
	Section string
	Name    string
	Path    string
	// Create marks the single write operation. It is still sent as a signed GET.
	Create bool
	// Requires names a query parameter the vendor expects but the catalog
	// does not supply; callers pass it as an extra Param.
	Requires string
	Params   func(now time.Time) []Param
}

var operations = []Operation{
	{Section: "3.1", Name: OpPlanList, Path: "/pro/getPlanListPro"},
	{Section: "3.2", Name: OpPlantOverview, Path: "/pro/getPlantOverviewPro"},
	{Section: "3.3", Name: OpPlantOutput, Path: "/pro/getPlantOutputPro", Params: func(now time.Time) []Param {
		return []Param{{"period", "bydays"}, {"date", now.Format(dateLayout)}}
	}},
	{Section: "3.4", Name: OpPlantEvent, Path: "/pro/getPlantEventPro", Requires: "sdt"},
	{Section: "3.5", Name: OpDeviceList, Path: "/pro/getDeviceListPro"},
	{Section: "3.6", Name: OpLocation, Path: "/pro/getLocationPro", Requires: "psno"},
	{Section: "3.7", Name: OpLastTsData, Path: "/pro/getLastTsDataPro"},
	{Section: "3.8", Name: OpInverterDataPage, Path: "/pro/getInverterDataPagePro", Requires: "startDate"},
	{Section: "3.9", Name: OpInverterEToday, Path: "/pro/getInverterETodayPro", Params: func(now time.Time) []Param {
		return []Param{{"date", now.Format(dateLayout)}}
	}},
	{Section: "3.10", Name: OpInverterHisErrorPage, Path: "/pro/getInverterHisErrorPagePro", Requires: "startDate"},
	{Section: "3.11", Name: OpInverterCurrentError, Path: "/pro/getInverterCurrentErrorPro"},
	{Section: "3.12", Name: OpInverterOverview, Path: "/pro/getInverterOverviewPro"},
	{Section: "3.13", Name: OpInverterRecover, Path: "/pro/getInverterRecoverStatusPro", Requires: "faultCodes"},
	{Section: "3.14", Name: OpCreateStation, Path: "/pro/createstationPro", Create: true},
}

// Operations returns the catalog in vendor section order.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, bool) {
	for _, op := range operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// Call executes the named catalog operation. Extra params follow the
// operation's own params in the query before signing.
func (c *Client) Call(ctx context.Context, name string, extra ...Param) (*types.Response, error) {
	op, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", name)
	}

	var params []Param
	if op.Params != nil {
		params = op.Params(c.now())
	}
	params = append(params, extra...)

	return c.Execute(ctx, op.Path, params...)
}

// GetLastTsData retrieves the latest telemetry sample of the configured inverter.
func (c *Client) GetLastTsData(ctx context.Context) (*types.Response, error) {
	return c.Call(ctx, OpLastTsData)
}
