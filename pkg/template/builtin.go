package template

import "github.com/okapen/inkwell/pkg/domain"

// Builtin returns the stock catalog of educational document kinds, in a
// stable order.
func Builtin() []domain.Template {
	return []domain.Template{
		{
			Kind:        "syllabus",
			Name:        "Course Syllabus",
			Description: "Comprehensive course overview and structure",
			Skeleton: `# {course_code} - {title}

**Instructor:** {instructor_name}
**Semester:** {semester}
**Credits:** {credits}

## Course Description
{description}

## Learning Objectives
{objectives}

## Course Modules
{modules}

## Assessment
{assessment}

## Schedule
{schedule}

## Course Policies
{policies}
`,
			Required: []string{"instructor_name", "semester", "credits", "description"},
			Optional: []string{"objectives", "modules", "assessment", "schedule", "policies"},
		},
		{
			Kind:        "exam",
			Name:        "Sample Exam",
			Description: "Comprehensive exam with multiple sections",
			Skeleton: `# {course_code} - {title}

**Course:** {course_title}
**Exam:** {exam_type}
**Date:** {exam_date}
**Duration:** {duration}
**Total Points:** {total_points}

## Instructions
{instructions}

## Section A: Multiple Choice ({mc_points} points)
*Choose the best answer for each question.*

{multiple_choice_questions}

## Section B: Short Answer ({sa_points} points)
*Provide brief, clear answers.*

{short_answer_questions}

## Section C: Problem Solving ({ps_points} points)
*Show all work and explain your reasoning.*

{problem_solving_questions}

## Answer Key
*For instructor use*

{answer_key}
`,
			Required: []string{"course_title", "exam_type", "duration", "total_points"},
			Optional: []string{
				"exam_date", "instructions", "mc_points", "sa_points", "ps_points",
				"multiple_choice_questions", "short_answer_questions",
				"problem_solving_questions", "answer_key",
			},
		},
		{
			Kind:        "assignment",
			Name:        "Assignment",
			Description: "Homework or project assignment",
			Skeleton: `# Assignment {assignment_number}: {title}

**Course:** {course_code}
**Due Date:** {due_date}
**Points:** {total_points}
**Submission:** {submission_method}

## Overview
{overview}

## Learning Objectives
Students will demonstrate ability to:
{objectives}

## Instructions
{instructions}

## Requirements
{requirements}

## Problems/Tasks
{tasks}

## Grading Rubric
{rubric}

## Submission Guidelines
{submission_guidelines}

## Resources
{resources}
`,
			Required: []string{"assignment_number", "due_date", "total_points", "overview"},
			Optional: []string{
				"submission_method", "objectives", "instructions", "requirements",
				"tasks", "rubric", "submission_guidelines", "resources",
			},
		},
		{
			Kind:        "lecture",
			Name:        "Lecture Notes",
			Description: "Detailed lecture notes for class",
			Skeleton: `# Lecture {lecture_number}: {title}

**Course:** {course_code}
**Date:** {lecture_date}
**Chapter:** {chapter_reference}

## Today's Agenda
{agenda}

## Learning Objectives
{objectives}

## Review from Last Class
{review}

## Main Content

{main_content}

## Summary
{summary}

## Next Class Preview
{next_class}

## Homework/Practice
{homework}
`,
			Required: []string{"lecture_number", "lecture_date", "main_content"},
			Optional: []string{
				"chapter_reference", "agenda", "objectives", "review",
				"summary", "next_class", "homework",
			},
		},
		{
			Kind:        "class_content",
			Name:        "Class Content",
			Description: "Daily class session content",
			Skeleton: `# {title} - Class {class_number}

**Course:** {course_code}
**Date:** {class_date}
**Duration:** {duration}

## Learning Objectives
By the end of this class, students will be able to:
{objectives}

## Prerequisites
{prerequisites}

## Class Outline

### Introduction ({intro_duration} minutes)
{introduction}

### Main Content ({main_duration} minutes)
{main_content}

### Practice/Activity ({activity_duration} minutes)
{activities}

### Wrap-up ({wrapup_duration} minutes)
{wrapup}

## Key Concepts
{key_concepts}

## Resources
{resources}

## Homework/Next Steps
{homework}
`,
			Required: []string{"class_number", "class_date", "duration", "objectives"},
			Optional: []string{
				"prerequisites", "intro_duration", "main_duration",
				"activity_duration", "wrapup_duration", "introduction",
				"main_content", "activities", "wrapup", "key_concepts",
				"resources", "homework",
			},
		},
		{
			Kind:        "lab",
			Name:        "Lab Manual",
			Description: "Hands-on lab exercise manual",
			Skeleton: `# Lab {lab_number}: {title}

**Course:** {course_code}
**Duration:** {duration}
**Difficulty:** {difficulty}

## Objectives
Students will:
{objectives}

## Prerequisites
{prerequisites}

## Materials Needed
{materials}

## Safety Guidelines
{safety}

## Procedure

### Part 1: Setup ({setup_duration} minutes)
{setup_steps}

### Part 2: Main Exercise ({exercise_duration} minutes)
{exercise_steps}

### Part 3: Analysis ({analysis_duration} minutes)
{analysis_steps}

## Deliverables
{deliverables}

## Troubleshooting
{troubleshooting}

## Extension Activities
{extensions}
`,
			Required: []string{"lab_number", "duration", "objectives", "exercise_steps"},
			Optional: []string{
				"difficulty", "prerequisites", "materials", "safety",
				"setup_duration", "exercise_duration", "analysis_duration",
				"setup_steps", "analysis_steps", "deliverables",
				"troubleshooting", "extensions",
			},
		},
	}
}
