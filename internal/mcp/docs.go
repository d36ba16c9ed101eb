package mcp

const serverInstructions = `innova tracks project approvals: leaders submit projects with user stories, managers review them, approved projects are tracked story by story.

Core concepts:
- Account: a leader (authors and submits projects) or a manager (reviews them).
- Project lifecycle: pendiente → aprobado | devuelto | no-aprobado; devuelto → pendiente on resubmit; pendiente/devuelto → cancelado. no-aprobado and cancelado are final but kept for history.
- User story: a unit of work inside a project. open → pending_approval (leader submits evidence) → approved (manager signs off, final).
- Progress: percentage of approved stories, always derived, never stored.

Workflow:
1) register_account, then login. Mutating tools act as the logged-in account.
2) Leader: submit_project with at least one story. Revise returned projects with resubmit_project; withdraw with cancel_project (two calls: proposal, then confirm).
3) Manager: pending_approvals, then approve_project (with an incentive), return_project or reject_project.
4) Tracking: leader calls mark_stories_completed with an evidence reference; manager calls approve_stories. record_tracking keeps AI-usage verification and notes current.
5) Views: list_projects (leaders see their own, managers see all), project_history with filters, summary_counts.
`
