// Package http provides HTTP handlers and middleware for the scheduler API.
//
// The router exposes the following endpoints:
//   - POST /api/employees/create: registers an employee. Body: {"name","email"}.
//     Duplicate emails are rejected with 409.
//   - GET /api/employees/{id}: fetches one employee, 404 when unknown.
//   - GET /api/employees: lists every employee.
//   - POST /api/meetings/book: books a meeting. Body: {"adminId","topic",
//     "startTime","endTime","participantIds"}. Responds with the persisted
//     meeting and each participant's full slot history; a participant with an
//     overlapping booked slot rejects the request with 409.
//   - GET /api/meetings/free-slots?employeeIds=&requestedStartTime=&durationMinutes=:
//     lists the calendar slots that stay clear of the requested window.
//   - POST /api/meetings/conflicts?requestedStartTime=&durationMinutes=: reports
//     every employee whose meetings overlap the requested window.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
