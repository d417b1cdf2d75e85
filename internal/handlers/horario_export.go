package handlers

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var ordenDias = map[string]int{
	"lunes":     0,
	"martes":    1,
	"miércoles": 2,
	"miercoles": 2,
	"jueves":    3,
	"viernes":   4,
	"sábado":    5,
	"sabado":    5,
	"domingo":   6,
}

func ordenDia(dia string) int {
	if n, ok := ordenDias[strings.ToLower(dia)]; ok {
		return n
	}
	return len(ordenDias)
}

// Export vuelca el horario completo a un xlsx, ordenado por día de la
// semana y hora de inicio.
func (h *HorarioHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.Stores.Horarios.FindAll(ctx)
	if err != nil {
		errorInterno(c, err)
		return
	}
	expandidos, err := h.expandir(ctx, rows)
	if err != nil {
		errorInterno(c, err)
		return
	}

	sort.Slice(expandidos, func(i, j int) bool {
		di, dj := ordenDia(expandidos[i].DiaSemana), ordenDia(expandidos[j].DiaSemana)
		if di != dj {
			return di < dj
		}
		return expandidos[i].HoraInicio < expandidos[j].HoraInicio
	})

	f := excelize.NewFile()
	sheet := "Horarios"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "No")
	f.SetCellValue(sheet, "B1", "Día")
	f.SetCellValue(sheet, "C1", "Inicio")
	f.SetCellValue(sheet, "D1", "Fin")
	f.SetCellValue(sheet, "E1", "Clase")
	f.SetCellValue(sheet, "F1", "Profesor")
	f.SetCellValue(sheet, "G1", "Alumno")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#FFFF00"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	f.SetCellStyle(sheet, "A1", "G1", headerStyle)

	for i, e := range expandidos {
		row := i + 2
		clase, profesor, alumno := "", "", ""
		if e.Clase != nil {
			clase = e.Clase.Nombre
		}
		if e.Profesor != nil {
			profesor = e.Profesor.Nombre
		}
		if e.Alumno != nil {
			alumno = e.Alumno.Nombre
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.DiaSemana)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.HoraInicio)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), e.HoraFin)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), clase)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), profesor)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), alumno)
	}

	for col := 1; col <= 7; col++ {
		colName, _ := excelize.ColumnNumberToName(col)
		f.SetColWidth(sheet, colName, colName, 18)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		errorInterno(c, err)
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="horarios.xlsx"`)
	c.Writer.Write(buf.Bytes())
}
