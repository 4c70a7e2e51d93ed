package report

// Variant parameterizes the one submission form shared by the weekly and
// daily reporting pages: the enumerated status set, the sentinel label
// that needs no date range, and the backend actions to use.
type Variant struct {
	Name         string
	Sentinel     string
	Statuses     []string
	SubmitAction string
	EditAction   string
	DashboardTab string
	SubmitTab    string
	MemberTab    string
}

// StartTab is the tab a fresh session opens on: admins land on the
// dashboard, members on their own starting pane.
func (v Variant) StartTab(isAdmin bool) string {
	if isAdmin {
		return v.DashboardTab
	}
	return v.MemberTab
}

// Allows reports whether the variant's status set contains the label.
func (v Variant) Allows(status string) bool {
	for _, s := range v.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Weekly is the weekly exception report: only exceptional statuses are
// entered, "none" meaning the person has no exception.
func Weekly() Variant {
	return Variant{
		Name:     "weekly",
		Sentinel: "none",
		Statuses: []string{
			"none",
			"official-duty",
			"study",
			"personal-leave",
			"vacation-leave",
			"absent",
		},
		SubmitAction: "submit_status_report",
		EditAction:   "get_report_for_editing",
		DashboardTab: "tab-dashboard",
		SubmitTab:    "tab-submit-status",
		MemberTab:    "tab-active-statuses",
	}
}

// Daily is the next-day muster report: every person is accounted for,
// "on-duty" meaning present.
func Daily() Variant {
	return Variant{
		Name:     "daily",
		Sentinel: "on-duty",
		Statuses: []string{
			"on-duty",
			"official-duty",
			"site-supervision",
			"study",
			"personal-leave",
			"vacation-leave",
		},
		SubmitAction: "submit_daily_status_report",
		EditAction:   "get_report_for_editing",
		DashboardTab: "tab-dashboard-daily",
		SubmitTab:    "tab-submit-status-daily",
		MemberTab:    "tab-submit-status-daily",
	}
}

// VariantByName resolves a configured variant name, defaulting to weekly.
func VariantByName(name string) Variant {
	if name == "daily" {
		return Daily()
	}
	return Weekly()
}
