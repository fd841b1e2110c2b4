package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roadwatch/potholectl/internal/config"
	"github.com/roadwatch/potholectl/internal/logger"
	"github.com/roadwatch/potholectl/internal/session"
)

var (
	reportRoad      string
	reportArea      string
	reportCity      string
	reportName      string
	reportAuthority string
	reportDetails   string
	reportCount     int
	reportPDF       bool
	reportEmailTo   string
	reportTimeout   time.Duration
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [image]...",
		Short: "Generate a pothole complaint, optionally as PDF or email",
		Long: `Generate a complaint letter from detection results. When image files are
given they are detected first and the findings feed the complaint; without
images the pothole count comes from --count.

The complaint can additionally be exported as a PDF and dispatched by email
with the annotated images attached.

Examples:
  potholectl report --road "MG Road" --city Pune photos/*.jpg
  potholectl report --count 5 --road "MG Road" --pdf
  potholectl report --email-to pwd@city.gov photos/*.jpg`,
		RunE: runReport,
	}

	cmd.Flags().StringVar(&reportRoad, "road", "", "road name for the complaint")
	cmd.Flags().StringVar(&reportArea, "area", "", "area or locality")
	cmd.Flags().StringVar(&reportCity, "city", "", "city (defaults to config)")
	cmd.Flags().StringVar(&reportName, "name", "", "complainant name (defaults to config)")
	cmd.Flags().StringVar(&reportAuthority, "authority", "", "addressed authority (defaults to config)")
	cmd.Flags().StringVar(&reportDetails, "details", "", "extra details for the complaint")
	cmd.Flags().IntVar(&reportCount, "count", 0, "pothole count when no images are given")
	cmd.Flags().BoolVar(&reportPDF, "pdf", false, "export the complaint as PDF")
	cmd.Flags().StringVar(&reportEmailTo, "email-to", "", "dispatch the complaint to this address")
	cmd.Flags().DurationVar(&reportTimeout, "timeout", 0, "request timeout (defaults to config)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logger.New("cli", isVerbose)
	cfg := GetGlobalConfig()

	sess, err := newBackendSession(log)
	if err != nil {
		return err
	}

	timeout := reportTimeout
	if timeout == 0 {
		timeout = cfg.Services.DetectTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if len(args) > 0 {
		images, err := loadImages(args)
		if err != nil {
			return err
		}
		sess.AddFromSelection(images)

		if _, err := sess.Submit(ctx); err != nil {
			return err
		}
		fmt.Println(sess.Status())
	}

	fields := reportFields(cmd, cfg)
	text, err := sess.Generate(ctx, fields)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(text)
	fmt.Println()

	if reportPDF {
		path, err := sess.ExportPDF(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("PDF saved to %s\n", path)
	}

	if reportEmailTo != "" {
		sess.SetRecipient(reportEmailTo)
		if _, err := sess.Dispatch(ctx); err != nil {
			return err
		}
		fmt.Println(sess.Status())
	}

	return nil
}

// reportFields assembles complaint fields from flags and config defaults
func reportFields(cmd *cobra.Command, cfg *config.Config) session.Fields {
	fields := session.Fields{
		RoadName:      reportRoad,
		Area:          reportArea,
		City:          reportCity,
		UserName:      reportName,
		AuthorityName: reportAuthority,
		ExtraDetails:  reportDetails,
	}

	if fields.City == "" {
		fields.City = cfg.Complaint.City
	}
	if fields.UserName == "" {
		fields.UserName = cfg.Complaint.UserName
	}
	if fields.AuthorityName == "" {
		fields.AuthorityName = cfg.Complaint.AuthorityName
	}
	if cmd.Flag("count").Changed {
		count := reportCount
		fields.Count = &count
	}

	return fields
}
