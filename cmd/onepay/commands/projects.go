package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := appCtx.catalog.Projects(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range projects {
				fmt.Printf("#%d %s — %s [%s] (%d واحد آزاد)\n", p.ID, p.Title, p.Address, p.Status, p.AvailableUnits)
			}
			return nil
		},
	}
}

func projectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "project [id]",
		Short: "Show a project's plans and units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			project, err := appCtx.catalog.Project(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%s — %s [%s]\n%s\n", project.Title, project.Address, project.Status, project.Description)
			if len(project.Plans) > 0 {
				fmt.Println("\nنقشه‌ها:")
				for _, plan := range project.Plans {
					fmt.Printf("  %s (%s, %s)\n", plan.Title, plan.Level, plan.FileFormat)
				}
			}
			fmt.Println("\nواحدها:")
			for _, unit := range project.Units {
				fmt.Printf("  #%d %s | طبقه %d | %.1f متر | %d خواب | %d | %s\n",
					unit.ID, unit.UnitCode, unit.Floor, unit.AreaM2, unit.Bedrooms, unit.Price, unit.Status)
			}
			return nil
		},
	}
}

func requestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List your purchase requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := appCtx.sessions.Session()
			if sess.Token == "" {
				fmt.Println("برای مشاهده درخواست‌ها ابتدا وارد شوید: onepay login")
				return nil
			}
			requests, err := appCtx.booking.MyRequests(cmd.Context(), sess.Token)
			if err != nil {
				return err
			}
			if len(requests) == 0 {
				fmt.Println("درخواستی ثبت نشده است.")
				return nil
			}
			for _, req := range requests {
				fmt.Printf("%s | واحد %s | %s | %s\n",
					req.TrackingCode, req.Unit.UnitCode, req.Status, req.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
