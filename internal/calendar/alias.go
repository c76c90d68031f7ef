package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one loosely typed source record, as decoded from JSON or a
// spreadsheet row.
type Record map[string]any

// Field is a logical field of a source record.
type Field int

const (
	FieldAbsenceType Field = iota
	FieldAbsenceReason
	FieldAbsenceStart
	FieldAbsenceEnd
	FieldAbsenceDate
	FieldAbsencePeriod

	FieldLeaveStart
	FieldLeaveEnd
	FieldLeavePredictedEnd
	FieldLeaveSituation

	FieldRosterMonth
	FieldRosterEmployeeCode
	FieldRosterEmployeeName

	FieldScheduleName
	FieldScheduleCenter
	FieldScheduleGroup
	FieldScheduleDays

	FieldEventDate
	FieldEventTime
	FieldEventType
	FieldEventDuration
)

// aliases lists, in lookup order, the keys each logical field is stored
// under across the upstream sources.
var aliases = map[Field][]string{
	FieldAbsenceType:   {"tipo", "TIPO", "tipo_ausencia", "tipoAusencia", "TIPO_AUSENCIA", "type"},
	FieldAbsenceReason: {"motivo", "MOTIVO", "observaciones", "OBSERVACIONES", "descripcion", "reason"},
	FieldAbsenceStart:  {"fecha_inicio", "fechaInicio", "FECHA_INICIO", "desde", "DESDE", "start_date"},
	FieldAbsenceEnd:    {"fecha_fin", "fechaFin", "FECHA_FIN", "hasta", "HASTA", "end_date"},
	FieldAbsenceDate:   {"fecha", "FECHA", "dia", "DIA", "date"},
	FieldAbsencePeriod: {"periodo", "PERIODO", "fechas", "FECHAS", "rango"},

	FieldLeaveStart:        {"fecha_baja", "fechaBaja", "FECHA_BAJA", "fecha_inicio", "fechaInicio", "FECHA_INICIO", "start_date"},
	FieldLeaveEnd:          {"fecha_alta", "fechaAlta", "FECHA_ALTA", "fecha_fin", "fechaFin", "FECHA_FIN", "end_date"},
	FieldLeavePredictedEnd: {"fecha_alta_prevista", "fechaAltaPrevista", "FECHA_ALTA_PREVISTA", "fecha_prevista", "fechaPrevista", "FECHA_PREVISTA", "predicted_end_date"},
	FieldLeaveSituation:    {"situacion", "SITUACION", "estado", "ESTADO", "status"},

	FieldRosterMonth:        {"mes", "MES", "month", "periodo", "PERIODO"},
	FieldRosterEmployeeCode: {"codigo_empleado", "codigoEmpleado", "CODIGO_EMPLEADO", "codigo", "CODIGO", "employee_code"},
	FieldRosterEmployeeName: {"nombre", "NOMBRE", "nombre_empleado", "nombreEmpleado", "employee_name"},

	FieldScheduleName:   {"nombre", "NOMBRE", "horario", "HORARIO", "name"},
	FieldScheduleCenter: {"centro", "CENTRO", "nombre_centro", "nombreCentro", "center_name"},
	FieldScheduleGroup:  {"grupo", "GRUPO", "nombre_grupo", "nombreGrupo", "group_name"},
	FieldScheduleDays:   {"dias", "DIAS", "days"},

	FieldEventDate:     {"fecha", "FECHA", "dia", "date"},
	FieldEventTime:     {"hora", "HORA", "time"},
	FieldEventType:     {"tipo", "TIPO", "tipo_fichaje", "tipoFichaje", "type"},
	FieldEventDuration: {"duracion", "DURACION", "tiempo", "TIEMPO", "duration"},
}

// Aliases returns the keys looked up for f, in order.
func Aliases(f Field) []string {
	keys := aliases[f]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Lookup returns the value of the first alias of f holding a non-empty value.
func Lookup(rec Record, f Field) (any, bool) {
	return lookupKeys(rec, aliases[f])
}

// LookupString is Lookup rendered as trimmed text.
func LookupString(rec Record, f Field) string {
	v, ok := Lookup(rec, f)
	if !ok {
		return ""
	}
	return toText(v)
}

// LookupDate is Lookup followed by Normalize.
func LookupDate(rec Record, f Field) (Date, bool) {
	v, ok := Lookup(rec, f)
	if !ok {
		return Date{}, false
	}
	return Normalize(v)
}

func lookupKeys(rec Record, keys []string) (any, bool) {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || isEmpty(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	}
	return false
}

func toText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
