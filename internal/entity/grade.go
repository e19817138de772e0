package entity

// Grade is an academic rank.
type Grade string

const (
	GradeProfesseurTitulaire Grade = "PROFESSEUR_TITULAIRE"
	GradeProfesseur          Grade = "PROFESSEUR"
	GradeProfesseurAssimile  Grade = "PROFESSEUR_ASSIMILE"
	GradeVacataire           Grade = "VACATAIRE"
	GradeAssistant           Grade = "ASSISTANT"
	GradeDoctorant           Grade = "DOCTORANT"
	GradeMaitreDeConferences Grade = "MAITRE_DE_CONFERENCES"
	GradeChargeDeCours       Grade = "CHARGE_DE_COURS"
)

func Grades() []Grade {
	return []Grade{
		GradeProfesseurTitulaire,
		GradeProfesseur,
		GradeProfesseurAssimile,
		GradeVacataire,
		GradeAssistant,
		GradeDoctorant,
		GradeMaitreDeConferences,
		GradeChargeDeCours,
	}
}

func (g Grade) Valid() bool {
	for _, v := range Grades() {
		if g == v {
			return true
		}
	}
	return false
}
