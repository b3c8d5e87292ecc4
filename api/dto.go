/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types keep
  the wire contract separate from the engine types, so field names can
  evolve without touching the pipelines.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

WIRE CONVENTIONS:
  Indicator values are rounded to two decimals at this boundary; the
  engines keep full precision internally. Spanish field captions
  (CUMPLE, TOTAL AÑO) pass through untranslated: they are the product's
  vocabulary.

SEE ALSO:
  - handlers.go: Uses these types
  - server.go: Route wiring
*/
package api

import (
	"time"

	"github.com/preventia/indicator-engine/dataset"
	"github.com/preventia/indicator-engine/indicator"
	"github.com/preventia/indicator-engine/proactive"
	"github.com/preventia/indicator-engine/reactive"
	"github.com/preventia/indicator-engine/store/memory"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// RowsRequest carries raw tabular rows plus an optional analysis kind.
// An empty kind is auto-detected from the columns.
type RowsRequest struct {
	Kind string        `json:"kind,omitempty"`
	Rows []dataset.Row `json:"rows"`
}

// CreateDatasetRequest creates a workspace dataset from raw rows.
type CreateDatasetRequest struct {
	Name string        `json:"name"`
	Kind string        `json:"kind,omitempty"`
	Rows []dataset.Row `json:"rows"`
}

// MonthEditRequest carries the cells of a month-row edit or append.
type MonthEditRequest struct {
	Values dataset.Row `json:"values"`
}

// =============================================================================
// SHARED RESPONSE PIECES
// =============================================================================

// ErrorResponse is the uniform error body. Missing is set for schema
// failures so clients can highlight the absent columns.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details string   `json:"details,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// IssueDTO is one validation finding.
type IssueDTO struct {
	Column  string `json:"column"`
	Message string `json:"message"`
	Row     int    `json:"row,omitempty"`
}

// RunMetaDTO identifies one processing run.
type RunMetaDTO struct {
	RunID      string `json:"run_id"`
	DurationMS int64  `json:"duration_ms"`
	Months     int    `json:"months"`
}

// ValidateResponse is the validator's verdict on a table.
type ValidateResponse struct {
	OK       bool       `json:"ok"`
	Kind     string     `json:"kind"`
	Errors   []IssueDTO `json:"errors"`
	Warnings []IssueDTO `json:"warnings"`
	Records  int        `json:"records"`
}

func toIssueDTOs(issues []dataset.Issue) []IssueDTO {
	out := make([]IssueDTO, len(issues))
	for i, is := range issues {
		out[i] = IssueDTO{Column: is.Column, Message: is.Message, Row: is.Row}
	}
	return out
}

// =============================================================================
// REACTIVE RESPONSES
// =============================================================================

// ReactiveRowDTO is one report row on the wire.
type ReactiveRowDTO struct {
	Kind                  string  `json:"kind"`
	Label                 string  `json:"label"`
	Workers               float64 `json:"num_trabajadores"`
	Hours                 float64 `json:"total_horas"`
	AccidentsWithLeave    float64 `json:"acc_baja"`
	AccidentsWithoutLeave float64 `json:"acc_sin_baja"`
	Illnesses             float64 `json:"enf_ocupacionales"`
	TotalInjuries         float64 `json:"total_lesiones"`
	LostDays              float64 `json:"dias_perdidos"`
	IF                    float64 `json:"if"`
	IG                    float64 `json:"ig"`
	TR                    float64 `json:"tr"`
	K                     float64 `json:"constante_k"`
}

// ChartDTO is the month-only series bundle chart renderers consume.
type ChartDTO struct {
	Months []string  `json:"months"`
	IF     []float64 `json:"if"`
	IG     []float64 `json:"ig"`
	TR     []float64 `json:"tr"`
}

// ReactiveStatsDTO mirrors reactive.Summary on the wire.
type ReactiveStatsDTO struct {
	TotalAccidentsWithLeave    float64 `json:"total_acc_baja"`
	TotalAccidentsWithoutLeave float64 `json:"total_acc_sin_baja"`
	TotalIllnesses             float64 `json:"total_enfermedades"`
	TotalInjuries              float64 `json:"total_lesiones"`
	TotalLostDays              float64 `json:"total_dias_perdidos"`
	TotalHours                 float64 `json:"total_horas"`
	MeanIF                     float64 `json:"if_promedio"`
	MeanIG                     float64 `json:"ig_promedio"`
	AnnualIF                   float64 `json:"if_anual"`
	AnnualIG                   float64 `json:"ig_anual"`
	MonthsWithoutAccidents     int     `json:"meses_sin_accidentes"`
	WorstMonth                 string  `json:"peor_mes,omitempty"`
}

// ReactiveProcessResponse is the full outcome of one reactive run.
type ReactiveProcessResponse struct {
	Meta     RunMetaDTO       `json:"meta"`
	Report   []ReactiveRowDTO `json:"report"`
	Chart    ChartDTO         `json:"chart"`
	Stats    ReactiveStatsDTO `json:"stats"`
	Warnings []IssueDTO       `json:"warnings,omitempty"`
}

func toReactiveRowDTOs(report reactive.ReportTable) []ReactiveRowDTO {
	out := make([]ReactiveRowDTO, len(report.Rows))
	for i, r := range report.Rows {
		out[i] = ReactiveRowDTO{
			Kind:                  string(r.Kind),
			Label:                 r.Label,
			Workers:               indicator.Round2(r.Workers),
			Hours:                 indicator.Round2(r.Hours),
			AccidentsWithLeave:    r.AccidentsWithLeave,
			AccidentsWithoutLeave: r.AccidentsWithoutLeave,
			Illnesses:             r.Illnesses,
			TotalInjuries:         r.TotalInjuries,
			LostDays:              r.LostDays,
			IF:                    indicator.Round2(r.IF),
			IG:                    indicator.Round2(r.IG),
			TR:                    indicator.Round2(r.TR),
			K:                     r.K,
		}
	}
	return out
}

func toChartDTO(chart reactive.ChartTable) ChartDTO {
	dto := ChartDTO{
		Months: chart.Months,
		IF:     make([]float64, len(chart.IF)),
		IG:     make([]float64, len(chart.IG)),
		TR:     make([]float64, len(chart.TR)),
	}
	for i := range chart.IF {
		dto.IF[i] = indicator.Round2(chart.IF[i])
		dto.IG[i] = indicator.Round2(chart.IG[i])
		dto.TR[i] = indicator.Round2(chart.TR[i])
	}
	return dto
}

func toReactiveStatsDTO(s reactive.Summary) ReactiveStatsDTO {
	return ReactiveStatsDTO{
		TotalAccidentsWithLeave:    s.TotalAccidentsWithLeave,
		TotalAccidentsWithoutLeave: s.TotalAccidentsWithoutLeave,
		TotalIllnesses:             s.TotalIllnesses,
		TotalInjuries:              s.TotalInjuries,
		TotalLostDays:              s.TotalLostDays,
		TotalHours:                 indicator.Round2(s.TotalHours),
		MeanIF:                     indicator.Round2(s.MeanIF),
		MeanIG:                     indicator.Round2(s.MeanIG),
		AnnualIF:                   indicator.Round2(s.AnnualIF),
		AnnualIG:                   indicator.Round2(s.AnnualIG),
		MonthsWithoutAccidents:     s.MonthsWithoutAccidents,
		WorstMonth:                 s.WorstMonth,
	}
}

// =============================================================================
// PROACTIVE RESPONSES
// =============================================================================

// ProactiveRowDTO is one month's indicator set on the wire.
type ProactiveRowDTO struct {
	Month       string             `json:"mes"`
	Values      map[string]float64 `json:"indicadores"`
	IGTotal     float64            `json:"ig_total"`
	Target      float64            `json:"meta"`
	MeetsTarget bool               `json:"cumple"`
	Status      string             `json:"estado"`
}

// ProactiveIndicatorStatsDTO summarizes one family.
type ProactiveIndicatorStatsDTO struct {
	Mean          float64 `json:"promedio"`
	Min           float64 `json:"minimo"`
	Max           float64 `json:"maximo"`
	MeetingTarget int     `json:"cumple_meta"`
}

// ProactiveStatsDTO mirrors proactive.Summary on the wire.
type ProactiveStatsDTO struct {
	Target        float64                               `json:"meta"`
	MonthsMeeting int                                   `json:"meses_cumplen"`
	MonthsFailing int                                   `json:"meses_no_cumplen"`
	MeanIGTotal   float64                               `json:"ig_total_promedio"`
	Indicators    map[string]ProactiveIndicatorStatsDTO `json:"indicadores"`
}

// ProactiveProcessResponse is the full outcome of one proactive run.
type ProactiveProcessResponse struct {
	Meta     RunMetaDTO        `json:"meta"`
	Rows     []ProactiveRowDTO `json:"rows"`
	Stats    ProactiveStatsDTO `json:"stats"`
	Warnings []IssueDTO        `json:"warnings,omitempty"`
}

// CatalogEntryDTO is one indicator definition for display layers.
type CatalogEntryDTO struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
	Weight      int    `json:"weight"`
}

func toProactiveRowDTOs(table proactive.IndicatorTable) []ProactiveRowDTO {
	out := make([]ProactiveRowDTO, len(table.Rows))
	for i, r := range table.Rows {
		values := make(map[string]float64, len(r.Values))
		for code, v := range r.Values {
			values[code] = indicator.Round2(v)
		}
		out[i] = ProactiveRowDTO{
			Month:       r.Month,
			Values:      values,
			IGTotal:     indicator.Round2(r.IGTotal),
			Target:      r.Target,
			MeetsTarget: r.MeetsTarget,
			Status:      r.Status,
		}
	}
	return out
}

func toProactiveStatsDTO(s proactive.Summary) ProactiveStatsDTO {
	dto := ProactiveStatsDTO{
		Target:        s.Target,
		MonthsMeeting: s.MonthsMeeting,
		MonthsFailing: s.MonthsFailing,
		MeanIGTotal:   indicator.Round2(s.MeanIGTotal),
		Indicators:    make(map[string]ProactiveIndicatorStatsDTO, len(s.Indicators)),
	}
	for code, st := range s.Indicators {
		dto.Indicators[code] = ProactiveIndicatorStatsDTO{
			Mean:          indicator.Round2(st.Mean),
			Min:           indicator.Round2(st.Min),
			Max:           indicator.Round2(st.Max),
			MeetingTarget: st.MeetingTarget,
		}
	}
	return dto
}

// =============================================================================
// WORKSPACE RESPONSES
// =============================================================================

// DatasetDTO is one workspace dataset on the wire.
type DatasetDTO struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Kind      string        `json:"kind"`
	Columns   []string      `json:"columns"`
	Rows      []dataset.Row `json:"rows"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

func toDatasetDTO(ds memory.Dataset) DatasetDTO {
	return DatasetDTO{
		ID:        ds.ID,
		Name:      ds.Name,
		Kind:      string(ds.Kind),
		Columns:   ds.Table.Columns,
		Rows:      ds.Table.Rows,
		CreatedAt: ds.CreatedAt.Format(time.RFC3339),
		UpdatedAt: ds.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// DEMO DATA ON THE WIRE
// =============================================================================

// Demo records go out as raw rows in the loader's column vocabulary so
// clients can feed them straight back into validate/process.
func reactiveRecordRows(records []reactive.MonthlyRecord) []dataset.Row {
	rows := make([]dataset.Row, len(records))
	for i, r := range records {
		rows[i] = dataset.Row{
			"mes":               r.Month,
			"anio":              r.Year,
			"num_trabajadores":  r.Workers,
			"horas_hombre_mes":  r.Hours,
			"horas_extras":      r.Overtime,
			"acc_baja":          r.AccidentsWithLeave,
			"acc_sin_baja":      r.AccidentsWithoutLeave,
			"enf_ocupacionales": r.Illnesses,
			"dias_perdidos":     r.LostDays,
		}
	}
	return rows
}

func proactiveRecordRows(records []proactive.MonthlyRecord) []dataset.Row {
	rows := make([]dataset.Row, len(records))
	for i, r := range records {
		rows[i] = dataset.Row{
			"mes":                r.Month,
			"anio":               r.Year,
			"nart_prog":          r.ARTProgrammed,
			"nart_ejec":          r.ARTExecuted,
			"opas_prog":          r.OPASProgrammed,
			"opas_real":          r.OPASRealized,
			"opas_personas_prev": r.OPASExpectedPeople,
			"opas_personas_conf": r.OPASCompliantPeople,
			"dps_plan":           r.DPSPlanned,
			"dps_real":           r.DPSHeld,
			"dps_previstos":      r.DPSExpectedAttendees,
			"dps_asistentes":     r.DPSAttendees,
			"ds_detectadas":      r.DSDetected,
			"ds_eliminadas":      r.DSEliminated,
			"ent_programados":    r.TrainingProgrammed,
			"ent_entrenados":     r.TrainingTrained,
			"osea_aplicables":    r.OSEAApplicable,
			"osea_cumplidos":     r.OSEAMet,
			"cai_propuestas":     r.CAIProposed,
			"cai_implement":      r.CAIImplemented,
			"ef_totales":         r.EFTotal,
			"ef_auditados":       r.EFAudited,
		}
	}
	return rows
}
