package engine

import "github.com/teman-edu/advisor-cli/internal/model"

// Condition constructors for the sample rule set. Weights and tolerances
// mirror the production loader's defaults.

func condLevel(target string) model.Condition {
	return model.Condition{
		ID: "level", Field: model.FieldStudentLevel, Kind: model.KindEquality,
		Target: target, Required: true, Weight: 1, BorderlineCredit: 0.5,
		Label: "Student level " + target,
	}
}

func condBand(min float64, label string) model.Condition {
	return model.Condition{
		ID: "band", Field: model.FieldAcademicBand, Kind: model.KindThreshold,
		Min: min, Tolerance: 1, Scale: model.ScaleGrade,
		Required: true, Weight: 1, BorderlineCredit: 0.5, Label: label,
	}
}

func condCredits(min float64, label string) model.Condition {
	return model.Condition{
		ID: "credits", Field: model.FieldSPMCredits, Kind: model.KindThreshold,
		Min: min, Tolerance: 1, Required: true, Weight: 1, BorderlineCredit: 0.5,
		Label: label,
	}
}

func condCGPA(min float64, label string) model.Condition {
	return model.Condition{
		ID: "cgpa", Field: model.FieldCGPA, Kind: model.KindThreshold,
		Min: min, Tolerance: 0.2, Required: true, Weight: 1, BorderlineCredit: 0.5,
		Label: label,
	}
}

func condBudget(min, tolerance float64, label string) model.Condition {
	return model.Condition{
		ID: "budget", Field: model.FieldBudgetMonthly, Kind: model.KindThreshold,
		Min: min, Tolerance: tolerance, Required: true, Weight: 1, BorderlineCredit: 0.5,
		Label: label,
	}
}

func condEnglish(min float64, label string) model.Condition {
	return model.Condition{
		ID: "english", Field: model.FieldEnglishLevel, Kind: model.KindThreshold,
		Min: min, Tolerance: 1, Scale: model.ScaleEnglish,
		Required: true, Weight: 1, BorderlineCredit: 0.5, Label: label,
	}
}

func condInterest(values ...string) model.Condition {
	return model.Condition{
		ID: "interest", Field: model.FieldInterestTags, Kind: model.KindMembership,
		Values: values, Required: false, Weight: 0.5, BorderlineCredit: 0.5,
		Label: "Interest in " + values[0],
	}
}

func condDestination(values ...string) model.Condition {
	return model.Condition{
		ID: "destination", Field: model.FieldDestinationTags, Kind: model.KindMembership,
		Values: values, Required: false, Weight: 0.5, BorderlineCredit: 0.5,
		Label: "Destination " + values[0],
	}
}

func condTimeline(window float64, label string) model.Condition {
	return model.Condition{
		ID: "timeline", Field: model.FieldIntakeMonths, Kind: model.KindRange,
		Min: 0, Max: window, Tolerance: 2, Required: false, Weight: 0.5,
		BorderlineCredit: 0.5, Label: label,
	}
}

// sampleRuleSet is the 22-rule counselor table the scenario tests evaluate
// against: seven low-selectivity local pathways, eight medium twinning and
// degree options, seven high-selectivity overseas programs.
func sampleRuleSet() []model.Rule {
	return []model.Rule{
		// Low selectivity: local entry pathways.
		{
			RuleID: "local-cert-it", PathwayName: "Local IT Certificate",
			Selectivity: model.SelectivityLow, Priority: 3,
			Summary: "12-month skills certificate at a community college",
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(1, "1 SPM credit"),
				condInterest("it", "engineering"),
			},
			Universities: []string{"kolej-komuniti"},
		},
		{
			RuleID: "local-cert-business", PathwayName: "Local Business Certificate",
			Selectivity: model.SelectivityLow, Priority: 4,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(1, "1 SPM credit"),
				condInterest("business", "accounting"),
			},
		},
		{
			RuleID: "poli-diploma-eng", PathwayName: "Polytechnic Engineering Diploma",
			Selectivity: model.SelectivityLow, Priority: 2,
			Summary: "3-year diploma with strong industry placement",
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(3, "3 SPM credits"),
				condInterest("engineering", "it"), condTimeline(6, "Intake within 6 months"),
			},
			Universities: []string{"poli-ungku-omar"},
		},
		{
			RuleID: "poli-diploma-biz", PathwayName: "Polytechnic Business Diploma",
			Selectivity: model.SelectivityLow, Priority: 3,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(3, "3 SPM credits"),
				condInterest("business", "marketing"),
			},
			Universities: []string{"poli-ungku-omar"},
		},
		{
			RuleID: "foundation-science", PathwayName: "Local Science Foundation",
			Selectivity: model.SelectivityLow, Priority: 1,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(5, "5 SPM credits"),
				condBand(5, "Band B or above"), condInterest("science", "engineering"),
			},
			Universities: []string{"um-foundation"},
		},
		{
			RuleID: "foundation-arts", PathwayName: "Local Arts Foundation",
			Selectivity: model.SelectivityLow, Priority: 2,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(4, "4 SPM credits"),
				condInterest("arts", "design"),
			},
		},
		{
			RuleID: "matrikulasi", PathwayName: "Matriculation Programme",
			Selectivity: model.SelectivityLow, Priority: 1,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(5, "5 SPM credits"),
				condBand(6, "Band B+ or above"), condTimeline(8, "Intake within 8 months"),
			},
		},

		// Medium selectivity: local degrees and twinning programs.
		{
			RuleID: "local-degree-cs", PathwayName: "Local CS Degree",
			Selectivity: model.SelectivityMedium, Priority: 2,
			Conditions: []model.Condition{
				condLevel("diploma_graduate"), condCGPA(2.5, "CGPA 2.5 or above"),
				condBudget(800, 160, "Budget RM800 monthly"), condInterest("it", "engineering"),
			},
			Universities: []string{"utm"},
		},
		{
			RuleID: "local-degree-business", PathwayName: "Local Business Degree",
			Selectivity: model.SelectivityMedium, Priority: 3,
			Conditions: []model.Condition{
				condLevel("diploma_graduate"), condCGPA(2.2, "CGPA 2.2 or above"),
				condBudget(700, 140, "Budget RM700 monthly"), condInterest("business", "accounting"),
			},
		},
		{
			RuleID: "twinning-engineering", PathwayName: "Twinning Engineering Degree",
			Selectivity: model.SelectivityMedium, Priority: 1,
			Summary: "2+1 local-overseas engineering track",
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(5, "5 SPM credits"),
				condBand(6, "Band B+ or above"),
				// Strict budget floor: no tolerance, partners do not flex.
				condBudget(1500, 0, "Budget RM1500 monthly"),
				condEnglish(1, "English Intermediate or above"),
				condInterest("engineering"),
			},
			Universities: []string{"taylors", "monash-my"},
		},
		{
			RuleID: "twinning-business", PathwayName: "Twinning Business Degree",
			Selectivity: model.SelectivityMedium, Priority: 2,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(4, "4 SPM credits"),
				condBudget(1200, 240, "Budget RM1200 monthly"),
				condEnglish(1, "English Intermediate or above"),
				condInterest("business"),
			},
			Universities: []string{"taylors"},
		},
		{
			RuleID: "private-degree-it", PathwayName: "Private IT Degree",
			Selectivity: model.SelectivityMedium, Priority: 2,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(4, "4 SPM credits"),
				condBand(5, "Band B or above"),
				condBudget(1000, 200, "Budget RM1000 monthly"),
				condInterest("it"),
			},
			Universities: []string{"apu"},
		},
		{
			RuleID: "private-degree-design", PathwayName: "Private Design Degree",
			Selectivity: model.SelectivityMedium, Priority: 3,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(3, "3 SPM credits"),
				condBudget(900, 180, "Budget RM900 monthly"),
				condInterest("design", "arts"),
			},
		},
		{
			RuleID: "topup-degree-it", PathwayName: "IT Top-up Degree",
			Selectivity: model.SelectivityMedium, Priority: 1,
			Conditions: []model.Condition{
				condLevel("diploma_graduate"), condCGPA(2.8, "CGPA 2.8 or above"),
				condEnglish(1, "English Intermediate or above"),
				condInterest("it"),
			},
			Universities: []string{"apu"},
		},
		{
			RuleID: "topup-degree-eng", PathwayName: "Engineering Top-up Degree",
			Selectivity: model.SelectivityMedium, Priority: 2,
			Conditions: []model.Condition{
				condLevel("diploma_graduate"), condCGPA(3.0, "CGPA 3.0 or above"),
				condEnglish(1, "English Intermediate or above"),
				condInterest("engineering"),
			},
		},

		// High selectivity: overseas programs.
		{
			RuleID: "overseas-degree-au", PathwayName: "Australian Engineering Degree",
			Selectivity: model.SelectivityHigh, Priority: 1,
			Summary: "Direct entry to an Australian engineering bachelor",
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(6, "6 SPM credits"),
				condBand(7, "Band A- or above"),
				condBudget(2500, 500, "Budget RM2500 monthly"),
				condEnglish(2, "English Advanced"),
				condDestination("overseas", "australia"),
			},
			Universities: []string{"uni-melb", "monash-au"},
		},
		{
			RuleID: "overseas-degree-uk", PathwayName: "UK Degree via Foundation",
			Selectivity: model.SelectivityHigh, Priority: 2,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(6, "6 SPM credits"),
				condBand(7, "Band A- or above"),
				condBudget(2800, 560, "Budget RM2800 monthly"),
				condEnglish(2, "English Advanced"),
				condDestination("overseas", "uk"),
			},
			Universities: []string{"manchester"},
		},
		{
			RuleID: "overseas-transfer-us", PathwayName: "US Transfer Programme",
			Selectivity: model.SelectivityHigh, Priority: 3,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(6, "6 SPM credits"),
				condBudget(3000, 600, "Budget RM3000 monthly"),
				condEnglish(2, "English Advanced"),
				condDestination("overseas", "us"),
			},
		},
		{
			RuleID: "overseas-topup-au", PathwayName: "Australian Top-up Year",
			Selectivity: model.SelectivityHigh, Priority: 1,
			Conditions: []model.Condition{
				condLevel("diploma_graduate"), condCGPA(3.3, "CGPA 3.3 or above"),
				condBudget(2500, 500, "Budget RM2500 monthly"),
				condEnglish(2, "English Advanced"),
				condDestination("overseas", "australia"),
			},
			Universities: []string{"monash-au"},
		},
		{
			RuleID: "overseas-scholarship-jp", PathwayName: "Japan Scholarship Track",
			Selectivity: model.SelectivityHigh, Priority: 2,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(7, "7 SPM credits"),
				condBand(8, "Band A or above"),
				condEnglish(1, "English Intermediate or above"),
				condDestination("overseas", "japan"),
			},
		},
		{
			RuleID: "overseas-nursing-sg", PathwayName: "Singapore Nursing Degree",
			Selectivity: model.SelectivityHigh, Priority: 2,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(5, "5 SPM credits"),
				condBudget(2000, 400, "Budget RM2000 monthly"),
				condEnglish(1, "English Intermediate or above"),
				condInterest("nursing", "healthcare"),
				condDestination("overseas", "singapore"),
			},
		},
		{
			RuleID: "overseas-medicine-ie", PathwayName: "Ireland Medicine Pathway",
			Selectivity: model.SelectivityHigh, Priority: 4,
			Conditions: []model.Condition{
				condLevel("spm_leaver"), condCredits(8, "8 SPM credits"),
				condBand(8, "Band A or above"),
				condBudget(3500, 700, "Budget RM3500 monthly"),
				condEnglish(2, "English Advanced"),
				condInterest("medicine", "healthcare"),
			},
		},
	}
}

// sampleCatalog resolves a subset of the fixture's university references; the
// rest stay unresolved on purpose.
func sampleCatalog() *model.Catalog {
	return model.NewCatalog([]model.University{
		{UniversityID: "poli-ungku-omar", Name: "Politeknik Ungku Omar", Country: "Malaysia"},
		{UniversityID: "utm", Name: "Universiti Teknologi Malaysia", Country: "Malaysia"},
		{UniversityID: "taylors", Name: "Taylor's University", Country: "Malaysia"},
		{UniversityID: "apu", Name: "Asia Pacific University", Country: "Malaysia"},
		{UniversityID: "uni-melb", Name: "University of Melbourne", Country: "Australia"},
		{UniversityID: "monash-au", Name: "Monash University", Country: "Australia"},
	})
}

func sampleSnapshot() *model.RuleSnapshot {
	return model.NewRuleSnapshot("v-sample", sampleRuleSet())
}
