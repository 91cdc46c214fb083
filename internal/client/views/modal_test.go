package views

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/socrates/internal/client/api"
	"github.com/dmitrijs2005/socrates/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingCreator struct {
	started chan struct{}
	release chan struct{}
	err     error
}

func (b *blockingCreator) CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	close(b.started)
	<-b.release
	if b.err != nil {
		return models.Project{}, b.err
	}
	return models.Project{ID: "p1", Title: in.Title}, nil
}

func TestProjectForm_Payload(t *testing.T) {
	f := NewProjectForm(newFake(), nil)
	f.Open()
	require.NoError(t, f.SetTitle("  App "))
	require.NoError(t, f.SetDescription("desc"))
	require.NoError(t, f.SetTechStack("React, Node.js"))

	assert.Equal(t, models.ProjectInput{
		Title:           "App",
		Description:     "desc",
		TechnologyStack: []string{"React", "Node.js"},
	}, f.Payload())
}

func TestProjectForm_StateMachine(t *testing.T) {
	fake := newFake()
	var created []models.Project
	f := NewProjectForm(fake, func(p models.Project) { created = append(created, p) })

	assert.Equal(t, ModalClosed, f.State())
	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, f.SetTitle("x"), ErrClosed)

	f.Open()
	assert.Equal(t, ModalIdle, f.State())

	_, err = f.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, msgTitleRequired, f.FormError())
	assert.Zero(t, fake.count("CreateProject"))

	require.NoError(t, f.SetTitle("Go"))
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModalClosed, f.State())
	assert.Empty(t, f.FormError())
	require.Len(t, created, 1)

	f.Open()
	assert.Equal(t, models.ProjectInput{TechnologyStack: []string{}}, f.Payload(), "success clears the form")
}

func TestProjectForm_ServerDetailInline(t *testing.T) {
	fake := newFake()
	fake.createErr = &api.APIError{Status: http.StatusUnprocessableEntity, Detail: "Title already used"}
	f := NewProjectForm(fake, nil)
	f.Open()
	require.NoError(t, f.SetTitle("Dup"))

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, ModalIdle, f.State())
	assert.Equal(t, "Title already used", f.FormError())

	fake.createErr = api.ErrUnavailable
	_, err = f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, msgCreateProjectFailed, f.FormError())
}

func TestProjectForm_CloseResets(t *testing.T) {
	f := NewProjectForm(newFake(), nil)
	f.Open()
	require.NoError(t, f.SetTitle("draft"))
	require.NoError(t, f.SetTechStack("Go"))
	f.Close()
	f.Open()
	assert.Equal(t, models.ProjectInput{TechnologyStack: []string{}}, f.Payload())
}

func TestProjectForm_BusyWhileSubmitting(t *testing.T) {
	bc := &blockingCreator{started: make(chan struct{}), release: make(chan struct{})}
	f := NewProjectForm(bc, nil)
	f.Open()
	require.NoError(t, f.SetTitle("Go"))

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()

	<-bc.started
	assert.Equal(t, ModalSubmitting, f.State())
	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrBusy)
	require.ErrorIs(t, f.SetTitle("other"), ErrBusy)

	close(bc.release)
	require.NoError(t, <-done)
	assert.Equal(t, ModalClosed, f.State())
}

func TestSessionForm(t *testing.T) {
	fake := newFake()
	f := NewSessionForm(fake, "p1", nil)
	f.Open()

	assert.Equal(t, models.ModeChat, f.Mode())
	require.ErrorIs(t, f.SetMode("debate"), ErrInvalidInput)
	require.NoError(t, f.SetMode(models.ModeTeaching))
	require.NoError(t, f.SetTitle("Intro"))
	require.NoError(t, f.SetRoleDescription("patient tutor"))

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SessionInput{
		ProjectID:       "p1",
		Title:           "Intro",
		Mode:            models.ModeTeaching,
		RoleDescription: "patient tutor",
	}, fake.lastSession)

	f.Open()
	assert.Equal(t, models.ModeChat, f.Mode(), "mode resets to the default")

	fake.createErr = api.ErrUnavailable
	require.NoError(t, f.SetTitle("x"))
	_, err = f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, msgCreateSessionFailed, f.FormError())
}

func TestProjectForm_CloseDuringSubmitStaysClosed(t *testing.T) {
	for _, fail := range []bool{true, false} {
		bc := &blockingCreator{started: make(chan struct{}), release: make(chan struct{})}
		if fail {
			bc.err = errors.New("server down")
		}
		var created int
		f := NewProjectForm(bc, func(models.Project) { created++ })
		f.Open()
		require.NoError(t, f.SetTitle("Go"))

		done := make(chan error, 1)
		go func() {
			_, err := f.Submit(context.Background())
			done <- err
		}()

		<-bc.started
		f.Close()
		f.Open()
		require.NoError(t, f.SetTitle("Next"))
		close(bc.release)
		err := <-done

		assert.Equal(t, ModalIdle, f.State(), "reopened form is left alone")
		assert.Empty(t, f.FormError())
		assert.Equal(t, "Next", f.Payload().Title)
		if fail {
			require.Error(t, err)
			assert.Zero(t, created)
		} else {
			require.NoError(t, err)
			assert.Equal(t, 1, created)
		}

		f.Close()
		assert.Equal(t, ModalClosed, f.State())
	}
}

func TestProjectForm_LateFailureAfterClose(t *testing.T) {
	bc := &blockingCreator{started: make(chan struct{}), release: make(chan struct{}), err: errors.New("boom")}
	f := NewProjectForm(bc, nil)
	f.Open()
	require.NoError(t, f.SetTitle("Go"))

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()

	<-bc.started
	f.Close()
	close(bc.release)
	require.Error(t, <-done)

	assert.Equal(t, ModalClosed, f.State())
	assert.Empty(t, f.FormError())
	assert.Empty(t, f.Payload().Title)
}
