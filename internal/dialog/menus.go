package dialog

import "vacancy-bot/internal/chat"

// Reply-keyboard labels. Free text matching one of these is routed as the
// equivalent command.
const (
	labelViewVacancies  = "📋 Переглянути вакансії"
	labelHelp           = "❓ Довідка"
	labelAddVacancy     = "➕ Додати вакансію"
	labelEditVacancy    = "✏️ Редагувати вакансію"
	labelDeleteVacancy  = "🗑 Видалити вакансію"
	labelViewCandidates = "👥 Переглянути кандидатів"
)

func candidateMenu() *chat.Keyboard {
	return &chat.Keyboard{
		Reply: [][]string{
			{labelViewVacancies},
			{labelHelp},
		},
	}
}

func adminMenu() *chat.Keyboard {
	return &chat.Keyboard{
		Reply: [][]string{
			{labelViewVacancies},
			{labelAddVacancy, labelEditVacancy},
			{labelDeleteVacancy, labelViewCandidates},
			{labelHelp},
		},
	}
}

const candidateHelp = `Доступні команди:

/start — переглянути вакансії
/help — довідка

Щоб подати заявку, оберіть вакансію зі списку та натисніть «Подати заявку».`

const adminHelp = candidateHelp + `

Команди адміністратора:

/addvacancy — додати вакансію
/editvacancy — редагувати вакансію
/deletevacancy — видалити вакансію
/viewcandidates — переглянути кандидатів`
