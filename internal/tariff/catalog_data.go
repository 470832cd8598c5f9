package tariff

import "math"

// Built-in catalog of Israeli supplier plans. This is input data, not
// logic: an ops-maintained JSON file given via config replaces it wholesale.

const plansLastUpdated = "2026-01-12"

var (
	weekdays = []int{0, 1, 2, 3, 4} // Sun-Thu
	allDays  = []int{0, 1, 2, 3, 4, 5, 6}
)

// Default returns the compiled-in catalog.
func Default() *Catalog {
	return &Catalog{
		BaseRate:    DefaultBaseRate,
		VATRate:     DefaultVATRate,
		LastUpdated: plansLastUpdated,
		Plans:       defaultPlans(),
	}
}

func defaultPlans() []Plan {
	return []Plan{
		{
			ID: "super-power-power", Provider: "Super Power", ProviderHebrew: "סופר פאוור",
			PlanName: "POWER Plan", PlanNameHebrew: "מסלול POWER",
			DiscountWindows: []DiscountWindow{{Days: allDays, StartHour: 0, EndHour: 24, Discount: 0.065}},
			DefaultDiscount: 0.065,
			ConditionsHebrew: []string{"ללא צורך במונה חכם", "הנחה בכל שעות היום בכל השבוע"},
			SourceURL:        "https://super-power.co.il/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "super-power-day", Provider: "Super Power", ProviderHebrew: "סופר פאוור",
			PlanName: "Day Plan", PlanNameHebrew: "מסלול יום", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 7, EndHour: 17, Discount: 0.16}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 7:00-17:00"},
			SourceURL:        "https://super-power.co.il/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "super-power-night-plus", Provider: "Super Power", ProviderHebrew: "סופר פאוור",
			PlanName: "Night Plus Plan", PlanNameHebrew: "מסלול לילה פלוס", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 23, EndHour: 7, Discount: 0.21}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 23:00-7:00"},
			SourceURL:        "https://super-power.co.il/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "super-power-green", Provider: "Super Power", ProviderHebrew: "סופר פאוור",
			PlanName: "GREEN Plan", PlanNameHebrew: "מסלול GREEN",
			DiscountWindows: []DiscountWindow{{Days: allDays, StartHour: 0, EndHour: 24, Discount: 0.035}},
			DefaultDiscount: 0.035,
			ConditionsHebrew: []string{"100% חשמל ירוק מאנרגיה סולארית", "הנחה בכל ימות השבוע"},
			SourceURL:        "https://super-power.co.il/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "pazgas-24-7", Provider: "Pazgas", ProviderHebrew: "פזגז חשמל",
			PlanName: "24/7 Discount", PlanNameHebrew: "הנחה 24/7",
			DiscountWindows: []DiscountWindow{{Days: allDays, StartHour: 0, EndHour: 24, Discount: 0.06}},
			DefaultDiscount: 0.06,
			ConditionsHebrew: []string{"ללא צורך במונה חכם", "הנחה קבועה בכל שעות היממה"},
			SourceURL:        "https://www.paz.co.il/gas-and-renewable-energy/pazgas", LastUpdated: plansLastUpdated,
		},
		{
			ID: "pazgas-yellow", Provider: "Pazgas", ProviderHebrew: "פזגז חשמל",
			PlanName: "Yellow Cashback", PlanNameHebrew: "צבירה לארנק באפליקציית yellow",
			DiscountWindows:   []DiscountWindow{{Days: allDays, StartHour: 0, EndHour: 24, Discount: 0.10}},
			DefaultDiscount:   0.10,
			MaxMonthlySavings: 50,
			RequiresMembership: &Membership{
				Type:               "app",
				DescriptionHebrew:  "נדרש רישום לאפליקציית Yellow",
				DescriptionEnglish: "Requires Yellow app registration",
			},
			Conditions:       []string{"Max 50 NIS/month (600 NIS/year)", "Requires Yellow app registration", "No smart meter required"},
			ConditionsHebrew: []string{"עד 50 ש\"ח בחודש / 600 ש\"ח בשנה", "מותנה ברישום לאפליקציית yellow", "ללא צורך במונה חכם"},
			SourceURL:        "https://www.paz.co.il/gas-and-renewable-energy/pazgas", LastUpdated: plansLastUpdated,
		},
		{
			ID: "cellcom-variable", Provider: "Cellcom Energy", ProviderHebrew: "סלקום אנרג'י",
			PlanName: "Small Bill Big Discount", PlanNameHebrew: "חשבון קטן הנחה גדולה",
			BillBasedTiers: []BillTier{
				{MaxBill: 149, Discount: 0.10},
				{MaxBill: 199, Discount: 0.08},
				{MaxBill: 299, Discount: 0.06},
				{MaxBill: math.Inf(1), Discount: 0.05},
			},
			Conditions: []string{
				"Discount varies by monthly bill",
				"Up to 149 NIS: 10%", "150-199 NIS: 8%", "200-299 NIS: 6%", "300+ NIS: 5%",
			},
			ConditionsHebrew: []string{
				"הנחה משתנה לפי גובה החשבון החודשי",
				"עד 149 ש\"ח: 10%", "150-199 ש\"ח: 8%", "200-299 ש\"ח: 6%", "300+ ש\"ח: 5%",
				"ללא צורך במונה חכם",
			},
			SourceURL: "https://cellcom.co.il/production/Private/1/energy3/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "cellcom-day", Provider: "Cellcom Energy", ProviderHebrew: "סלקום אנרג'י",
			PlanName: "Save During Day", PlanNameHebrew: "חוסכים ביום", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 7, EndHour: 17, Discount: 0.15}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 7:00-17:00"},
			SourceURL:        "https://cellcom.co.il/production/Private/1/energy3/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "cellcom-family", Provider: "Cellcom Energy", ProviderHebrew: "סלקום אנרג'י",
			PlanName: "Save for Family", PlanNameHebrew: "חוסכים למשפחה", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 14, EndHour: 20, Discount: 0.18}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 14:00-20:00"},
			SourceURL:        "https://cellcom.co.il/production/Private/1/energy3/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "cellcom-night", Provider: "Cellcom Energy", ProviderHebrew: "סלקום אנרג'י",
			PlanName: "Save at Night", PlanNameHebrew: "חוסכים בלילה", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 23, EndHour: 7, Discount: 0.20}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 23:00-7:00"},
			SourceURL:        "https://cellcom.co.il/production/Private/1/energy3/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "cellcom-fixed", Provider: "Cellcom Energy", ProviderHebrew: "סלקום אנרג'י",
			PlanName: "Fixed Savings", PlanNameHebrew: "חוסכים קבוע",
			// 5% year one, 6% from year two; representative average for ranking.
			DiscountWindows: []DiscountWindow{{Days: allDays, StartHour: 0, EndHour: 24, Discount: 0.055}},
			DefaultDiscount: 0.055,
			ConditionsHebrew: []string{"5% בשנה הראשונה, 6% בשנה השנייה+", "ללא צורך במונה חכם"},
			SourceURL:        "https://cellcom.co.il/production/Private/1/energy3/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "hot-24-7", Provider: "Hot Energy", ProviderHebrew: "הוט אנרג'י",
			PlanName: "Saving 24/7", PlanNameHebrew: "חוסכים 24/7",
			DiscountWindows: []DiscountWindow{{Days: allDays, StartHour: 0, EndHour: 24, Discount: 0.05}},
			DefaultDiscount: 0.05,
			RequiresMembership: &Membership{
				Type:               "other",
				DescriptionHebrew:  "ללקוחות הוט אנרג'י",
				DescriptionEnglish: "For Hot Energy customers",
			},
			ConditionsHebrew: []string{"ללא צורך במונה חכם", "ללקוחות הוט אנרג'י"},
			SourceURL:        "https://www.hot.net.il/heb/hotenergy/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "hot-fixed", Provider: "Hot Energy", ProviderHebrew: "הוט אנרג'י",
			PlanName: "Fixed Discount HOT", PlanNameHebrew: "חוסכים קבוע HOT",
			DiscountWindows:   []DiscountWindow{{Days: allDays, StartHour: 0, EndHour: 24, Discount: 0.07}},
			DefaultDiscount:   0.07,
			MaxMonthlySavings: 100,
			RequiresMembership: &Membership{
				Type:               "tv",
				DescriptionHebrew:  "ללקוחות HOT/NEXT/הוט מובייל",
				DescriptionEnglish: "For HOT/NEXT/Hot Mobile customers",
			},
			Conditions:       []string{"Max 100 NIS/month", "For HOT/NEXT/Hot Mobile customers", "No smart meter required"},
			ConditionsHebrew: []string{"עד 100 ש\"ח בחודש", "ללקוחות HOT/NEXT/הוט מובייל", "ללא צורך במונה חכם"},
			SourceURL:        "https://www.hot.net.il/heb/hotenergy/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "hot-day", Provider: "Hot Energy", ProviderHebrew: "הוט אנרג'י",
			PlanName: "Saving During Day", PlanNameHebrew: "חוסכים ביום", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 7, EndHour: 17, Discount: 0.15}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 7:00-17:00"},
			SourceURL:        "https://www.hot.net.il/heb/hotenergy/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "hot-night", Provider: "Hot Energy", ProviderHebrew: "הוט אנרג'י",
			PlanName: "Saving During Night", PlanNameHebrew: "חוסכים בלילה", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 23, EndHour: 7, Discount: 0.20}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 23:00-7:00"},
			SourceURL:        "https://www.hot.net.il/heb/hotenergy/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "partner-fixed", Provider: "Partner Power", ProviderHebrew: "פרטנר פאוור",
			PlanName: "Fixed Discount All Day", PlanNameHebrew: "הנחה קבועה כל היום",
			// 5%/6%/7% over three years; 6% average used for ranking.
			DiscountWindows: []DiscountWindow{{Days: allDays, StartHour: 0, EndHour: 24, Discount: 0.06}},
			DefaultDiscount: 0.06,
			ConditionsHebrew: []string{"5% שנה 1, 6% שנה 2, 7% שנה 3", "ללא צורך במונה חכם"},
			SourceURL:        "https://www.partner.co.il/n/partnerpower", LastUpdated: plansLastUpdated,
		},
		{
			ID: "partner-day", Provider: "Partner Power", ProviderHebrew: "פרטנר פאוור",
			PlanName: "Work From Home", PlanNameHebrew: "עובדים מהבית", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 7, EndHour: 17, Discount: 0.15}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 7:00-17:00"},
			SourceURL:        "https://www.partner.co.il/n/partnerpower", LastUpdated: plansLastUpdated,
		},
		{
			ID: "partner-night", Provider: "Partner Power", ProviderHebrew: "פרטנר פאוור",
			PlanName: "Night Owls", PlanNameHebrew: "חיות לילה", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 23, EndHour: 7, Discount: 0.20}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 23:00-7:00"},
			SourceURL:        "https://www.partner.co.il/n/partnerpower", LastUpdated: plansLastUpdated,
		},
		{
			ID: "bezeq-24-7", Provider: "Bezeq Energy", ProviderHebrew: "בזק אנרג'יה",
			PlanName: "Smart Saver 24/7", PlanNameHebrew: "חוסכים חכם 24/7",
			DiscountWindows: []DiscountWindow{{Days: allDays, StartHour: 0, EndHour: 24, Discount: 0.06}},
			DefaultDiscount: 0.06,
			ConditionsHebrew: []string{"ללא צורך במונה חכם", "הנחה בכל שעות היממה"},
			SourceURL:        "https://www.bezeq.co.il/benergy/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "bezeq-day", Provider: "Bezeq Energy", ProviderHebrew: "בזק אנרג'יה",
			PlanName: "Smart Daytime Saver", PlanNameHebrew: "חוסכים חכם ביום", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 7, EndHour: 17, Discount: 0.15}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 7:00-17:00"},
			SourceURL:        "https://www.bezeq.co.il/benergy/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "bezeq-night", Provider: "Bezeq Energy", ProviderHebrew: "בזק אנרג'יה",
			PlanName: "Smart Nighttime Saver", PlanNameHebrew: "חוסכים חכם בלילה", RequiresSmartMeter: true,
			DiscountWindows: []DiscountWindow{{Days: weekdays, StartHour: 23, EndHour: 7, Discount: 0.20}},
			ConditionsHebrew: []string{"נדרש מונה חכם", "הנחה בימים א-ה בין 23:00-7:00"},
			SourceURL:        "https://www.bezeq.co.il/benergy/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "amisragas-fixed", Provider: "Amisragas", ProviderHebrew: "אמישראגז חשמל",
			PlanName: "Fixed Savings", PlanNameHebrew: "חיסכון קבוע",
			// 6-7% by gas-customer status; 6.5% average used for ranking.
			DiscountWindows: []DiscountWindow{{Days: allDays, StartHour: 0, EndHour: 24, Discount: 0.065}},
			DefaultDiscount: 0.065,
			DiscountRange: &DiscountRange{
				Min: 0.06, Max: 0.07,
				MinLabelHebrew: "לקוחות חדשים", MinLabelEnglish: "New customers",
				MaxLabelHebrew: "לקוחות גז קיימים", MaxLabelEnglish: "Existing gas customers",
			},
			RequiresMembership: &Membership{
				Type:               "gas",
				DescriptionHebrew:  "הנחה גבוהה יותר ללקוחות גז קיימים",
				DescriptionEnglish: "Higher discount for existing gas customers",
			},
			ConditionsHebrew: []string{"6% ללקוחות חדשים, 7% ללקוחות גז קיימים", "ללא צורך במונה חכם", "הנחה בכל שעות היממה"},
			SourceURL:        "https://www.amisragas.co.il/electricity/", LastUpdated: plansLastUpdated,
		},
		{
			ID: "iec-baseline", Provider: "IEC (Israel Electric)", ProviderHebrew: "חברת החשמל",
			PlanName: "Standard Rate", PlanNameHebrew: "תעריף רגיל (ללא הנחה)",
			ConditionsHebrew: []string{"תעריף ברירת מחדל של חח\"י"},
			SourceURL:        "https://www.iec.co.il", LastUpdated: plansLastUpdated,
		},
	}
}
