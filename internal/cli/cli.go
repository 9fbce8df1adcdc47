// Package cli implements the interactive booking menu.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"

	"officeBooker/internal/lib/errs"
	"officeBooker/internal/lib/logger/sl"
	"officeBooker/internal/lib/validation"
	"officeBooker/internal/models"
	"officeBooker/internal/services/booking"
)

const dateFormatHint = "YYYY-MM-DD HH:MM"

type BookingService interface {
	CheckAvailability(ctx context.Context, officeNumber int, start, end time.Time) (booking.Result, error)
	BookOffice(ctx context.Context, req models.Booking) (booking.Result, error)
}

type CLI struct {
	log         *slog.Logger
	svc         BookingService
	officeCount int
	validate    *validator.Validate

	in  *bufio.Scanner
	out io.Writer

	title   *color.Color
	success *color.Color
	warning *color.Color
	failure *color.Color
}

func New(log *slog.Logger, svc BookingService, officeCount int, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		log:         log,
		svc:         svc,
		officeCount: officeCount,
		validate:    validation.New(),
		in:          bufio.NewScanner(in),
		out:         out,
		title:       color.New(color.Bold),
		success:     color.New(color.FgGreen),
		warning:     color.New(color.FgYellow),
		failure:     color.New(color.FgRed),
	}
}

// Run serves the menu until the user exits, the input ends or ctx is done.
func (c *CLI) Run(ctx context.Context) error {
	const op = "cli.Run"

	log := c.log.With(slog.String("op", op))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.menu()

		choice, err := c.prompt("Enter your choice (1-3): ")
		if err != nil {
			return c.finish(err)
		}

		switch strings.ToLower(choice) {
		case "1":
			err = c.checkAvailability(ctx)
		case "2":
			err = c.book(ctx)
		case "3", "q", "quit":
			c.goodbye()
			return nil
		default:
			c.warning.Fprintln(c.out, "Invalid choice. Please try again.")
			continue
		}

		if errors.Is(err, io.EOF) {
			return c.finish(err)
		}
		if err != nil {
			log.Error("command failed", slog.String("choice", choice), sl.Err(err))
			c.report(err)
		}
	}
}

func (c *CLI) menu() {
	fmt.Fprintln(c.out)
	c.title.Fprintln(c.out, "Office Booking System")
	fmt.Fprintln(c.out, "1. Check office availability")
	fmt.Fprintln(c.out, "2. Book an office")
	fmt.Fprintln(c.out, "3. Exit")
}

func (c *CLI) checkAvailability(ctx context.Context) error {
	office, start, end, err := c.readWindow()
	if err != nil {
		return err
	}

	res, err := c.svc.CheckAvailability(ctx, office, start, end)
	if err != nil {
		return err
	}

	c.printResult(res)

	return nil
}

func (c *CLI) book(ctx context.Context) error {
	office, start, end, err := c.readWindow()
	if err != nil {
		return err
	}

	name, err := c.readField("Enter your name: ", "user_name", "required,min=2",
		"Name must be at least 2 characters long")
	if err != nil {
		return err
	}

	email, err := c.readField("Enter your email: ", "user_email", "required,email",
		"Invalid email address")
	if err != nil {
		return err
	}

	phone, err := c.readField("Enter your phone number: ", "user_phone", "required,phone",
		"Invalid phone number format. Use only digits, '+', '-' and spaces")
	if err != nil {
		return err
	}

	res, err := c.svc.BookOffice(ctx, models.Booking{
		OfficeNumber: office,
		UserName:     name,
		UserEmail:    email,
		UserPhone:    phone,
		StartTime:    start,
		EndTime:      end,
	})
	if err != nil {
		return err
	}

	c.printResult(res)

	return nil
}

func (c *CLI) readWindow() (int, time.Time, time.Time, error) {
	office, err := c.readOffice()
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}

	start, err := c.readTime("Enter start time")
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}

	end, err := c.readTime("Enter end time")
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}

	return office, start, end, nil
}

// readOffice accepts any integer; the range is checked by the service.
func (c *CLI) readOffice() (int, error) {
	raw, err := c.prompt(fmt.Sprintf("Enter office number (1-%d): ", c.officeCount))
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Validation("office_number",
			fmt.Sprintf("Office number must be a number between 1 and %d", c.officeCount))
	}

	return n, nil
}

// readTime prompts until the answer parses.
func (c *CLI) readTime(label string) (time.Time, error) {
	for {
		raw, err := c.prompt(fmt.Sprintf("%s (%s): ", label, dateFormatHint))
		if err != nil {
			return time.Time{}, err
		}

		t, err := time.Parse(models.TimeLayout, raw)
		if err == nil {
			return t, nil
		}

		c.warning.Fprintf(c.out, "Invalid date format. Please use %s\n", dateFormatHint)
	}
}

func (c *CLI) readField(label, field, tag, reason string) (string, error) {
	raw, err := c.prompt(label)
	if err != nil {
		return "", err
	}

	if err := c.validate.Var(raw, tag); err != nil {
		return "", errs.Validation(field, reason)
	}

	return raw, nil
}

func (c *CLI) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)

	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return strings.TrimSpace(c.in.Text()), nil
}

func (c *CLI) printResult(res booking.Result) {
	switch res.Status {
	case booking.StatusAvailable, booking.StatusBooked:
		c.success.Fprintln(c.out, res)
	case booking.StatusOccupied, booking.StatusUnavailable:
		c.warning.Fprintln(c.out, res)
	default:
		c.failure.Fprintln(c.out, res)
	}
}

func (c *CLI) report(err error) {
	var validationErr *errs.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.failure.Fprintf(c.out, "Invalid input: %s\n", validationErr.Reason)
	case errors.Is(err, errs.ErrSystem):
		c.failure.Fprintf(c.out, "Error: %s\n", err)
	default:
		c.failure.Fprintf(c.out, "An unexpected error occurred: %s\n", err)
	}
}

func (c *CLI) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
		c.goodbye()
		return nil
	}

	return err
}

func (c *CLI) goodbye() {
	fmt.Fprintln(c.out, "Thank you for using the Office Booking System. Goodbye!")
}
