package command

const helpText = `Available Commands:

Task Management:
  task add <title> [due:<date>]      - Add a new task (date is YYYY-MM-DD or e.g. "tomorrow")
  task complete <id>                 - Mark a task as complete
  task start <id>                    - Mark a task as in progress
  task delete <id>                   - Delete a task
  quick <text>                       - Add a task described in plain words

Habit Tracking:
  habit add <title> <daily|weekly|monthly>  - Add a new habit
  habit complete <id>                       - Mark a habit as complete for today
  habit delete <id>                         - Delete a habit

List Commands:
  list tasks                         - Show all tasks
  list habits                        - Show all habits

General:
  help                               - Show this help message`
