package devserver

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/onepay-ir/onepay-client/catalog"
	"github.com/onepay-ir/onepay-client/identity"
)

// seed loads the sample catalog and demo account.
func (s *Server) seed() {
	now := s.now().UTC()

	s.projects = []catalog.ProjectDetail{
		{
			ID:          1,
			Title:       "برج باغ وان‌پی",
			Slug:        "onepay-garden-residence",
			Description: "مجتمع مسکونی مدرن با فضاهای عمومی باکیفیت، پارکینگ هوشمند و امکانات کامل خانوادگی.",
			Address:     "تهران، منطقه ۲۲",
			Status:      catalog.ProjectPreSale,
			CoverImage:  "https://images.unsplash.com/photo-1460317442991-0ec209397118?auto=format&fit=crop&w=1200&q=80",
			Plans: []catalog.FloorPlan{
				{
					ID:         1,
					Title:      "نقشه کلی - بلوک A",
					Level:      "همکف",
					FileFormat: "dwg",
					SourceURL:  "https://example.com/cad/block-a-master-plan.dwg",
					ViewerURL:  "https://example.com/viewer/block-a-master-plan",
				},
				{
					ID:         2,
					Title:      "نقشه تیپ طبقه چهار",
					Level:      "طبقه ۴",
					FileFormat: "dwg",
					SourceURL:  "https://example.com/cad/floor-4-typical.dwg",
					ViewerURL:  "https://example.com/viewer/floor-4-typical",
				},
			},
			Units: []catalog.Unit{
				{ID: 1, ProjectID: 1, UnitCode: "A-401", Floor: 4, AreaM2: 118.5, Bedrooms: 3, Price: 14_500_000_000, Status: catalog.UnitAvailable},
				{ID: 2, ProjectID: 1, UnitCode: "A-402", Floor: 4, AreaM2: 102.0, Bedrooms: 2, Price: 12_100_000_000, Status: catalog.UnitAvailable},
				{ID: 3, ProjectID: 1, UnitCode: "A-503", Floor: 5, AreaM2: 128.2, Bedrooms: 3, Price: 15_600_000_000, Status: catalog.UnitAvailable},
				{ID: 4, ProjectID: 1, UnitCode: "A-601", Floor: 6, AreaM2: 140.0, Bedrooms: 3, Price: 17_200_000_000, Status: catalog.UnitReserved},
				{ID: 5, ProjectID: 1, UnitCode: "A-602", Floor: 6, AreaM2: 98.4, Bedrooms: 2, Price: 11_800_000_000, Status: catalog.UnitSold},
			},
		},
		{
			ID:          2,
			Title:       "مجتمع مسکونی نارنجستان",
			Slug:        "narenjestan-residence",
			Description: "پروژه در حال فروش با دسترسی عالی به مترو و مراکز خرید.",
			Address:     "تهران، سعادت‌آباد",
			Status:      catalog.ProjectActive,
			Plans:       []catalog.FloorPlan{},
			Units: []catalog.Unit{
				{ID: 6, ProjectID: 2, UnitCode: "B-201", Floor: 2, AreaM2: 85.0, Bedrooms: 2, Price: 9_800_000_000, Status: catalog.UnitAvailable},
				{ID: 7, ProjectID: 2, UnitCode: "B-302", Floor: 3, AreaM2: 91.3, Bedrooms: 2, Price: 10_400_000_000, Status: catalog.UnitSold},
			},
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Onepay123!"), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("seeding demo user failed")
		return
	}
	demo := &user{
		Profile: identity.Profile{
			ID:        s.nextUserID,
			FullName:  "Demo Buyer",
			Mobile:    "09120000000",
			Email:     "demo@onepay.local",
			CreatedAt: now,
		},
		PasswordHash: string(hash),
	}
	s.nextUserID++
	s.users[demo.ID] = demo
	s.byMobile[demo.Mobile] = demo.ID
	s.byEmail[demo.Email] = demo.ID
}
