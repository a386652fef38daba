package extractor

// BuildMarksheetPrompt returns the extraction prompt for student marksheet images.
func BuildMarksheetPrompt() string {
	return `You are a document data extraction assistant. Analyze the provided student marksheet image and extract the following fields:

1. RRN (Registration/Roll Number)
2. Student Name
3. Class
4. School Name
5. Academic Year
6. Section-wise marks (subject name, marks obtained, maximum marks for each subject or section)
7. Total marks obtained and total maximum marks
8. Percentage
9. Grade

IMPORTANT INSTRUCTIONS:
- Extract EVERY subject or section row from the marks table. Do not skip, summarize, or omit any rows.
- Keep marks exactly as printed (e.g., "85", "85/100", "92.5"). Do not convert or recompute values.
- If a field is not present or not readable in the image, use the string "Not Available".

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation, just the raw JSON object, in exactly this structure:
{
  "rrn": "",
  "student_name": "",
  "class": "",
  "school": "",
  "academic_year": "",
  "sectionwise_marks": [
    {
      "subject": "",
      "marks_obtained": "",
      "max_marks": ""
    }
  ],
  "total_marks": "",
  "total_max_marks": "",
  "percentage": "",
  "grade": "",
  "additional_info": ""
}

All values must be strings. Put any other relevant details printed on the marksheet (remarks, rank, attendance) into "additional_info".`
}
