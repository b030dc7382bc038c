package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"studydesk/client"
	"studydesk/config"
	"studydesk/mockapi"
	"studydesk/models"
	"studydesk/session"
	"studydesk/store"
	"studydesk/utils"
	"studydesk/workflows"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{EnableColors: cfg.LogColors})

	// Wire the gateway; USE_MOCK routes requests into the in-process backend
	transport := &client.LoggingTransport{Logger: logger, EnableColors: cfg.LogColors}
	if cfg.UseMock {
		transport.Base = mockapi.Transport{App: mockapi.New().App()}
	}
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout, Transport: transport}
	gateway := client.New(cfg.APIBaseURL, httpClient)

	courses := store.NewCourseStore(gateway)

	run(cfg, gateway, courses, logger)
}

func run(cfg *config.Config, gateway client.Gateway, courses *store.CourseStore, logger *log.Logger) {
	ctx := context.Background()

	if _, err := courses.LoadAll(ctx); err != nil {
		logger.Printf("Error loading courses: %v", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Commands: list | search <term> | add <name> | open <id> | quit")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		cmd, arg := splitCommand(scanner.Text())

		switch cmd {
		case "":
		case "list":
			printCourses(courses.Filter(""))
		case "search":
			printCourses(courses.Filter(arg))
		case "add":
			course, err := courses.Create(ctx, arg)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Created course %d: %s\n", course.ID, course.Name)
			openCourse(ctx, cfg, gateway, course.ID, logger, scanner)
		case "open":
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("Usage: open <id>")
				continue
			}
			openCourse(ctx, cfg, gateway, id, logger, scanner)
		case "quit", "exit":
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func openCourse(ctx context.Context, cfg *config.Config, gateway client.Gateway, courseID int, logger *log.Logger, scanner *bufio.Scanner) {
	sess := session.New(gateway)
	sess.Open(ctx, courseID)

	if sess.State() != session.StateReady {
		fmt.Printf("Course %d not found\n", courseID)
		return
	}

	course := sess.Course()
	fmt.Printf("Course %d: %s\n", course.ID, course.Name)
	printMaterials(sess.Materials())

	upload := workflows.NewUpload(sess, gateway, logger, cfg.AutoCloseDelay)
	examgen := workflows.NewExamGen(sess, gateway, workflows.FileDownloader{Dir: cfg.DownloadDir}, logger, cfg.AutoCloseDelay)

	fmt.Println("Commands: materials | upload <slides|notes|exam> <path> | generate [n] [topics] | back")
	for {
		fmt.Printf("%s> ", course.Name)
		if !scanner.Scan() {
			return
		}
		cmd, arg := splitCommand(scanner.Text())

		switch cmd {
		case "":
		case "materials":
			printMaterials(sess.Materials())
		case "upload":
			doUpload(ctx, upload, arg)
		case "generate":
			doGenerate(ctx, examgen, arg)
		case "back":
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func doUpload(ctx context.Context, upload *workflows.UploadWorkflow, arg string) {
	kindArg, path := splitCommand(arg)
	if path == "" {
		fmt.Println("Usage: upload <slides|notes|exam> <path>")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Error reading file:", err)
		return
	}

	upload.Open()
	defer upload.Close()

	if err := upload.ChooseFile(workflows.File{Name: filepath.Base(path), Data: data}); err != nil {
		fmt.Println("Error:", err)
		return
	}
	if err := upload.SetKind(models.MaterialKind(kindArg)); err != nil {
		fmt.Println("Error:", err)
		return
	}
	if err := upload.Submit(ctx); err != nil {
		fmt.Println(upload.Message())
		return
	}
	fmt.Println("Uploaded", upload.FileName())
}

func doGenerate(ctx context.Context, examgen *workflows.ExamGenWorkflow, arg string) {
	opts := models.ExamOptions{}
	nArg, topics := splitCommand(arg)
	if n, err := strconv.Atoi(nArg); err == nil {
		opts.NQuestions = n
	} else {
		topics = strings.TrimSpace(arg)
	}
	opts.Topics = topics

	examgen.Open()
	defer examgen.Close()

	if err := examgen.SetOptions(opts); err != nil {
		fmt.Println("Error:", err)
		return
	}
	if err := examgen.Submit(ctx); err != nil {
		fmt.Println("Failed to generate exam:", err)
		return
	}
	fmt.Println("Saved exam to", examgen.SavedPath())
}

func printCourses(courses []models.Course) {
	if len(courses) == 0 {
		fmt.Println("No courses")
		return
	}
	for _, course := range courses {
		fmt.Printf("%3d  %s\n", course.ID, course.Name)
	}
}

func printMaterials(materials []models.Material) {
	if len(materials) == 0 {
		fmt.Println("No materials yet")
		return
	}
	for _, m := range materials {
		fmt.Printf("  %s %s\n", m.Kind.Icon(), m.DisplayName)
	}
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
