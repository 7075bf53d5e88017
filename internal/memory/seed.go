package memory

import "procure/internal/core"

func strptr(s string) *string { return &s }

func seedVendors() []core.Vendor {
	return []core.Vendor{
		{
			Name:           "Central Coast Office Solutions",
			Category:       "Office Supplies",
			BusinessType:   core.SmallBusiness,
			Location:       "San Luis Obispo, CA",
			Distance:       2.3,
			Rating:         4.7,
			ReviewCount:    143,
			Phone:          "(805) 544-3400",
			Email:          "orders@ccofficeSolutions.com",
			Website:        "www.centralcoastoffice.com",
			Specialties:    []string{"Paper Products", "Writing Supplies", "Office Equipment"},
			Certifications: []string{"SBA Certified", "California Small Business"},
			EmployeeCount:  12,
			AnnualRevenue:  1200000,
			DeliveryRadius: 50,
			MinimumOrder:   100,
			AvgOrderValue:  850,
			OnTimeRate:     96,
			QualityScore:   4.6,
			LastOrder:      "2024-07-15",
			TotalOrders:    34,
			TotalSpent:     28900,
		},
		{
			Name:           "Golden State Construction Services",
			Category:       "Construction & Public Works",
			BusinessType:   core.SmallBusiness,
			Location:       "Sacramento, CA",
			Distance:       15.2,
			Rating:         4.8,
			ReviewCount:    312,
			Phone:          "(916) 442-8200",
			Email:          "contracts@goldenstateconstruction.com",
			Website:        "www.goldenstateconstruction.com",
			Specialties:    []string{"Public Works", "Infrastructure", "Green Building", "ADA Compliance"},
			Certifications: []string{"CA DGS SB Certified", "CA DGS SB-PW Certified", "LEED Certified"},
			EmployeeCount:  45,
			AnnualRevenue:  8500000,
			DeliveryRadius: 150,
			MinimumOrder:   5000,
			AvgOrderValue:  125000,
			OnTimeRate:     95,
			QualityScore:   4.7,
			LastOrder:      "2024-08-05",
			TotalOrders:    18,
			TotalSpent:     2250000,
			ContractID:     strptr("DGS-2024-001"),
		},
		{
			Name:           "VetTech Solutions LLC",
			Category:       "Technology Services",
			BusinessType:   core.DisabledVeteran,
			Location:       "Los Angeles, CA",
			Distance:       285.4,
			Rating:         4.9,
			ReviewCount:    187,
			Phone:          "(213) 555-0199",
			Email:          "info@vettechsolutions.com",
			Website:        "www.vettechsolutions.com",
			Specialties:    []string{"Cybersecurity", "Cloud Services", "IT Infrastructure", "Software Development"},
			Certifications: []string{"CA DGS DVBE Certified", "NIST Cybersecurity", "Microsoft Gold Partner"},
			EmployeeCount:  22,
			AnnualRevenue:  3200000,
			DeliveryRadius: 500,
			MinimumOrder:   2500,
			AvgOrderValue:  45000,
			OnTimeRate:     98,
			QualityScore:   4.8,
			LastOrder:      "2024-08-10",
			TotalOrders:    28,
			TotalSpent:     1260000,
			ContractID:     strptr("DGS-2024-002"),
		},
	}
}

func seedCategories() []core.Category {
	return []core.Category{
		{ID: 1, Name: "Office Supplies", TotalSpend: 2800000, SMBSpend: 485000, SMBPercentage: 17.3, VendorCount: 12, AvgOrder: 1050, DGSContracts: 3, DVBESpend: 85000},
		{ID: 2, Name: "Food Services", TotalSpend: 8200000, SMBSpend: 2050000, SMBPercentage: 25.0, VendorCount: 18, AvgOrder: 6200, DGSContracts: 2, DVBESpend: 120000},
		{ID: 3, Name: "Construction & Public Works", TotalSpend: 15200000, SMBSpend: 4560000, SMBPercentage: 30.0, VendorCount: 14, AvgOrder: 125000, DGSContracts: 1, DVBESpend: 0},
		{ID: 4, Name: "Technology Services", TotalSpend: 3400000, SMBSpend: 1260000, SMBPercentage: 37.1, VendorCount: 6, AvgOrder: 45000, DGSContracts: 1, DVBESpend: 1260000},
	}
}

func seedTrends() []core.TrendPoint {
	return []core.TrendPoint{
		{ID: 1, Month: "Jan", Year: 2024, SMBSpending: 3200000, TotalSpending: 14800000, SMBPercentage: 21.6, DVBESpending: 380000, DVBEPercentage: 2.6, DGSContracts: 12},
		{ID: 2, Month: "Feb", Year: 2024, SMBSpending: 3450000, TotalSpending: 15200000, SMBPercentage: 22.7, DVBESpending: 420000, DVBEPercentage: 2.8, DGSContracts: 14},
		{ID: 3, Month: "Mar", Year: 2024, SMBSpending: 3680000, TotalSpending: 15600000, SMBPercentage: 23.6, DVBESpending: 465000, DVBEPercentage: 3.0, DGSContracts: 16},
	}
}

func seedRecommendations() []core.Recommendation {
	return []core.Recommendation{
		{
			ID:         1,
			Type:       "certification",
			Title:      "California DGS SB Certification Opportunity",
			Content:    "5 high-performing vendors in your network qualify for California DGS Small Business certification.",
			Confidence: 0.94,
			Action:     "Guide vendors through DGS SB certification process",
			Savings:    32000,
			Category:   "Certification Support",
			IsActive:   true,
		},
		{
			ID:         2,
			Type:       "discovery",
			Title:      "DVBE Vendor Gap Analysis",
			Content:    "Technology Services category shows only 37% DVBE participation vs 3% state goal.",
			Confidence: 0.89,
			Action:     "Engage VetTech Solutions and 2 other DVBE vendors",
			Savings:    145000,
			Category:   "Technology Services",
			IsActive:   true,
		},
	}
}
