package schema

// gost34602 is the built-in section table of GOST 34.602-89.
//
// Mandatory sections match the set the standard requires in every TOR;
// the remaining sections of the standard are modeled as optional so a
// minimal document profile stays valid.
func gost34602() *Schema {
	return &Schema{
		Version: "GOST 34.602-89",
		Sections: []*SectionDef{
			{
				ID:        "general",
				Title:     "Общие сведения",
				Mandatory: true,
				Fields: []FieldDef{
					{Name: "name", Type: FieldText, Required: true},
					{Name: "doc_type", Type: FieldEnum, Required: true, Options: []string{
						"Техническое задание",
						"Частное техническое задание",
						"Дополнение к техническому заданию",
					}},
					{Name: "system_type", Type: FieldText},
					{Name: "deadline", Type: FieldDate, Required: true},
					{Name: "basis", Type: FieldText},
				},
			},
			{
				ID:        "purpose",
				Title:     "Назначение и цели создания системы",
				Mandatory: true,
				Fields: []FieldDef{
					{Name: "text", Type: FieldText, Required: true},
				},
			},
			{
				ID:        "object",
				Title:     "Характеристика объекта автоматизации",
				Mandatory: true,
				Fields: []FieldDef{
					{Name: "text", Type: FieldText, Required: true},
				},
			},
			{
				ID:        "requirements",
				Title:     "Требования к системе",
				Mandatory: true,
				Fields: []FieldDef{
					{Name: "overview", Type: FieldText},
				},
				Children: []*SectionDef{
					{
						ID:        "functional",
						Title:     "Функциональные требования",
						Mandatory: true,
						Fields: []FieldDef{
							{Name: "items", Type: FieldText, Required: true, Multiline: true},
						},
					},
					{
						ID:    "nonfunctional",
						Title: "Нефункциональные требования",
						Fields: []FieldDef{
							{Name: "items", Type: FieldText, Required: true, Multiline: true},
						},
					},
					{
						ID:         "appendix",
						Title:      "Приложение",
						Repeatable: true,
						Fields: []FieldDef{
							{Name: "heading", Type: FieldText},
							{Name: "body", Type: FieldText, Required: true},
						},
					},
				},
			},
			{
				ID:        "works",
				Title:     "Состав и содержание работ по созданию системы",
				Mandatory: true,
				Fields: []FieldDef{
					{Name: "stages", Type: FieldText, Required: true, Multiline: true},
				},
			},
			{
				ID:        "acceptance",
				Title:     "Порядок контроля и приёмки системы",
				Mandatory: true,
				Fields: []FieldDef{
					{Name: "text", Type: FieldText, Required: true},
				},
			},
			{
				ID:    "preparation",
				Title: "Требования к составу и содержанию работ по подготовке объекта автоматизации к вводу системы в действие",
				Fields: []FieldDef{
					{Name: "text", Type: FieldText, Required: true},
				},
			},
			{
				ID:    "documentation",
				Title: "Требования к документированию",
				Fields: []FieldDef{
					{Name: "text", Type: FieldText, Required: true},
				},
			},
			{
				ID:    "sources",
				Title: "Источники разработки",
				Fields: []FieldDef{
					{Name: "text", Type: FieldText, Required: true},
				},
			},
		},
	}
}

// DefaultStages is the work-stage list pre-filled into new documents.
const DefaultStages = "Анализ требований и проектирование системы\n" +
	"Разработка программного обеспечения\n" +
	"Тестирование и отладка\n" +
	"Документирование системы\n" +
	"Внедрение и сопровождение"

// DefaultAcceptance is the acceptance-procedure text pre-filled into new documents.
const DefaultAcceptance = "Приемка системы осуществляется на основании результатов " +
	"комплексного тестирования и соответствия требованиям, изложенным в настоящем " +
	"техническом задании."
