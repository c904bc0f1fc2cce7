package idef0

import (
	"fmt"
	"strings"
)

// Context diagram (A-0): the whole studio as one box.
var contextNodes = []Node{
	{ID: "A0", Label: "Управлять деятельностью веб-студии (DevStudioOS)", X: 450, Y: 350, Width: 300, Height: 180, Number: "0"},
}

var contextEdges = []Edge{
	// Inputs
	{ID: "c-in-1", SourceID: External, TargetID: "A0", Label: "Потенциальные клиенты (Лиды)", Side: SideLeft, Offset: -40},
	{ID: "c-in-2", SourceID: External, TargetID: "A0", Label: "Git Commits (код разработчиков)", Side: SideLeft, Offset: 0},
	{ID: "c-in-3", SourceID: External, TargetID: "A0", Label: "Данные сотрудников", Side: SideLeft, Offset: 40},

	// Controls
	{ID: "c-ctrl-1", SourceID: External, TargetID: "A0", Label: "Законодательство РФ (ТК, НК)", Side: SideTop, Offset: -60},
	{ID: "c-ctrl-2", SourceID: External, TargetID: "A0", Label: "Устав студии и регламенты", Side: SideTop, Offset: -20},
	{ID: "c-ctrl-3", SourceID: External, TargetID: "A0", Label: "Бюджеты проектов", Side: SideTop, Offset: 20},
	{ID: "c-ctrl-4", SourceID: External, TargetID: "A0", Label: "Agile методология", Side: SideTop, Offset: 60},

	// Mechanisms
	{ID: "c-mech-1", SourceID: External, TargetID: "A0", Label: "Персонал (PM, Dev, Sales, Admin)", Side: SideBottom, Offset: -50},
	{ID: "c-mech-2", SourceID: External, TargetID: "A0", Label: "Инфраструктура (PostgreSQL, Redis)", Side: SideBottom, Offset: 0},
	{ID: "c-mech-3", SourceID: External, TargetID: "A0", Label: "DevStudioOS (скрипты, Celery)", Side: SideBottom, Offset: 50},

	// Outputs
	{ID: "c-out-1", SourceID: "A0", TargetID: External, Label: "Готовое ПО (Релизы)", Side: SideRight, Offset: -30},
	{ID: "c-out-2", SourceID: "A0", TargetID: External, Label: "Фин. документация (Акты, Счета)", Side: SideRight, Offset: 10},
	{ID: "c-out-3", SourceID: "A0", TargetID: External, Label: "Отчетность (Маржа, Эффективность)", Side: SideRight, Offset: 50},
}

// Decomposition (A0): four activities laid out on a diagonal so that flows
// run down and to the right.
var decompositionNodes = []Node{
	{ID: "A1", Label: "Управлять продажами (CRM)", X: 100, Y: 100, Width: 220, Height: 120, Number: "1"},
	{ID: "A2", Label: "Управлять ресурсами (Core Team)", X: 350, Y: 300, Width: 220, Height: 120, Number: "2"},
	{ID: "A3", Label: "Вести производственный процесс (PM)", X: 600, Y: 500, Width: 240, Height: 140, Number: "3"},
	{ID: "A4", Label: "Управлять финансами (Finance)", X: 850, Y: 700, Width: 220, Height: 120, Number: "4"},
}

var decompositionEdges = []Edge{
	// A1 sales
	{ID: "d-a1-in1", SourceID: External, TargetID: "A1", Label: "Лиды", Side: SideLeft, Offset: -20},
	{ID: "d-a1-in2", SourceID: External, TargetID: "A1", Label: "Заявки с сайта", Side: SideLeft, Offset: 20},
	{ID: "d-a1-ctrl1", SourceID: External, TargetID: "A1", Label: "План продаж", Side: SideTop, Offset: -30},
	{ID: "d-a1-ctrl2", SourceID: External, TargetID: "A1", Label: "Ценовая политика", Side: SideTop, Offset: 20},
	{ID: "d-a1-mech1", SourceID: External, TargetID: "A1", Label: "Sales Manager", Side: SideBottom, Offset: 0},

	// A2 HR
	{ID: "d-a2-in1", SourceID: External, TargetID: "A2", Label: "Данные кандидатов", Side: SideLeft, Offset: -20},
	{ID: "d-a2-in2", SourceID: External, TargetID: "A2", Label: "График отпусков", Side: SideLeft, Offset: 20},
	{ID: "d-a2-ctrl1", SourceID: External, TargetID: "A2", Label: "ТК РФ", Side: SideTop, Offset: -30},
	{ID: "d-a2-ctrl2", SourceID: External, TargetID: "A2", Label: "Штатное расписание", Side: SideTop, Offset: 20},
	{ID: "d-a2-mech1", SourceID: External, TargetID: "A2", Label: "HR / Admin", Side: SideBottom, Offset: 0},

	// A3 production
	{ID: "d-a1-to-a3-1", SourceID: "A1", TargetID: "A3", Label: "Новый клиент", Side: SideLeft, SourceSide: SideRight, Offset: -40},
	{ID: "d-a1-to-a3-2", SourceID: "A1", TargetID: "A3", Label: "Подписанный контракт", Side: SideLeft, SourceSide: SideRight, Offset: -20},
	{ID: "d-a2-to-a3", SourceID: "A2", TargetID: "A3", Label: "Availability (Доступность)", Side: SideLeft, SourceSide: SideRight, Offset: 0},
	{ID: "d-a3-in-ext", SourceID: External, TargetID: "A3", Label: "Git Commits (Webhook)", Side: SideLeft, Offset: 40},
	{ID: "d-a3-ctrl1", SourceID: External, TargetID: "A3", Label: "Техническое задание (Wiki)", Side: SideTop, Offset: -40},
	{ID: "d-a3-ctrl2", SourceID: External, TargetID: "A3", Label: "Agile методология", Side: SideTop, Offset: 0},
	// debt control fed back from finance
	{ID: "d-a4-to-a3-ctrl", SourceID: "A4", TargetID: "A3", Label: "Блокировка спринта", Side: SideTop, SourceSide: SideTop},
	{ID: "d-a3-mech1", SourceID: External, TargetID: "A3", Label: "PM, Dev, QA", Side: SideBottom, Offset: -30},
	{ID: "d-a3-mech2", SourceID: External, TargetID: "A3", Label: "Git Parser Service", Side: SideBottom, Offset: 30},

	// A4 finance
	{ID: "d-a2-to-a4", SourceID: "A2", TargetID: "A4", Label: "Cost Rate (Себестоимость)", Side: SideLeft, SourceSide: SideRight, Offset: -20},
	{ID: "d-a3-to-a4", SourceID: "A3", TargetID: "A4", Label: "TimeLogs", Side: SideLeft, SourceSide: SideRight, Offset: 20},
	{ID: "d-a4-ctrl1", SourceID: External, TargetID: "A4", Label: "Налоговый кодекс", Side: SideTop, Offset: -30},
	{ID: "d-a4-ctrl2", SourceID: External, TargetID: "A4", Label: "Условия договоров", Side: SideTop, Offset: 20},
	{ID: "d-a4-mech1", SourceID: External, TargetID: "A4", Label: "Бухгалтер", Side: SideBottom, Offset: -30},
	{ID: "d-a4-mech2", SourceID: External, TargetID: "A4", Label: "Billing Service (Cron)", Side: SideBottom, Offset: 30},

	// Outputs
	{ID: "d-a3-out1", SourceID: "A3", TargetID: External, Label: "Готовое ПО (Релизы)", Side: SideRight, Offset: -30},
	{ID: "d-a3-out2", SourceID: "A3", TargetID: External, Label: "Статус задач (Review/Done)", Side: SideRight, Offset: 10},
	{ID: "d-a4-out1", SourceID: "A4", TargetID: External, Label: "Счета и Акты (PDF)", Side: SideRight, Offset: -20},
	{ID: "d-a4-out2", SourceID: "A4", TargetID: External, Label: "Отчет по маржинальности", Side: SideRight, Offset: 20},
}

// ContextDiagram returns a fresh copy of the built-in A-0 diagram.
func ContextDiagram() *Diagram {
	d := &Diagram{
		Title: "Контекстная диаграмма (A-0)",
		Code:  ContextCode,
		Nodes: contextNodes,
		Edges: contextEdges,
	}
	return d.Clone()
}

// DecompositionDiagram returns a fresh copy of the built-in A0 diagram.
func DecompositionDiagram() *Diagram {
	d := &Diagram{
		Title: "Декомпозиция (A0)",
		Code:  "A0",
		Nodes: decompositionNodes,
		Edges: decompositionEdges,
	}
	return d.Clone()
}

// ForKind returns the built-in diagram of the given level.
func ForKind(k Kind) *Diagram {
	if k == KindDecomposition {
		return DecompositionDiagram()
	}
	return ContextDiagram()
}

// BuiltinNames lists the names accepted by Builtin.
func BuiltinNames() []string {
	return []string{string(KindContext), string(KindDecomposition)}
}

// Builtin resolves a built-in diagram by kind name or diagram code.
func Builtin(name string) (*Diagram, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "context", "a-0":
		return ContextDiagram(), nil
	case "decomposition", "a0":
		return DecompositionDiagram(), nil
	}
	return nil, fmt.Errorf("unknown diagram %q (want one of %s)", name, strings.Join(BuiltinNames(), ", "))
}
