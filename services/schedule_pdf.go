package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/mwangikev/swim_school/configs"
	"github.com/mwangikev/swim_school/models"
)

// GenerateSchedulePDF renders a registration's occurrence list to a
// printable PDF and uploads it, returning the hosted URL. Dates already in
// the swimmer's missing-dates list are marked as planned absences.
func GenerateSchedulePDF(reg models.SwimmerLessonRegistration) (string, error) {
	schedule, err := ScheduleOf(reg.Lesson)
	if err != nil {
		return "", err
	}

	htmlData, err := renderScheduleHTML(reg, schedule.Occurrences())
	if err != nil {
		return "", fmt.Errorf("failed to render schedule HTML: %w", err)
	}

	pdfBytes, err := printToPDF(htmlData)
	if err != nil {
		return "", fmt.Errorf("failed to print schedule to PDF: %w", err)
	}

	return uploadSchedulePDF(pdfBytes, reg.SwimmerID.String())
}

type scheduleRow struct {
	Date    string
	Weekday string
	Missing bool
}

func renderScheduleHTML(reg models.SwimmerLessonRegistration, occurrences []string) (string, error) {
	tmpl, err := template.ParseFiles("templates/schedule.html")
	if err != nil {
		return "", err
	}

	missing := make(map[string]bool)
	for _, d := range reg.MissingDateList() {
		missing[d] = true
	}

	rows := make([]scheduleRow, 0, len(occurrences))
	for _, date := range occurrences {
		parsed, _ := time.Parse(DateLayout, date)
		rows = append(rows, scheduleRow{
			Date:    date,
			Weekday: parsed.Weekday().String(),
			Missing: missing[date],
		})
	}

	data := struct {
		SwimmerName string
		LessonName  string
		TimeWindow  string
		Rows        []scheduleRow
		GeneratedOn string
	}{
		SwimmerName: reg.Swimmer.FirstName + " " + reg.Swimmer.LastName,
		LessonName:  reg.Lesson.Name,
		TimeWindow:  reg.Lesson.StartTime + " - " + reg.Lesson.EndTime,
		Rows:        rows,
		GeneratedOn: time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printToPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadSchedulePDF(fileBytes []byte, swimmerID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("schedules/%s_%s", swimmerID, uuid.New().String()),
		Folder:       "swim_school_schedules",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
