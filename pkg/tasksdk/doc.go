/*
Package tasksdk provides a client SDK for the TaskHub task tracking service.

# Overview

The package is organized around two main types:

  - SDKClient: unauthenticated operations (register, login, health probes)
  - Session: authenticated operations bound to a bearer token

Create an SDKClient to reach public endpoints and obtain sessions:

	client := tasksdk.NewSDKClient("https://tasks.example.com")

	health, err := client.GetLiveness(ctx)

	session, err := client.Register(ctx, "Alice", "alice@example.com", "password")

A Session wraps the bearer token returned by register or login and scopes
every call to that user:

	task, err := session.CreateTask(ctx, tasksdk.CreateTaskRequest{
		Title:    "Water the plants",
		Priority: "high",
		DueDate:  "2026-09-15",
	})

	tasks, err := session.ListTasks(ctx, tasksdk.TaskListOptions{Status: "todo"})

	stats, err := session.GetStats(ctx)

Tokens are plain JWT access tokens with no refresh flow. When a token
expires the service answers 401 and the caller logs in again; an expired
session can be detected with IsUnauthorized.

# Error Handling

Non-2xx responses are returned as *APIError carrying the HTTP status and
the machine-readable code from the failure envelope. The IsNotFound,
IsConflict and IsUnauthorized helpers classify common cases:

	task, err := session.GetTask(ctx, id)
	if tasksdk.IsNotFound(err) {
		// task does not exist, or belongs to another user
	}
*/
package tasksdk
